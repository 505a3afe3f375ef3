package plugin

// ModuleName is the name the host lists the module under.
const ModuleName = "Automatic Profile"

// Reply texts shown to the user.
const (
	replyClientNotReady = "Client is not ready yet, try again in a moment"
	replyMissingPfp     = "You don't have a profile picture to rotate"
	replyImageError     = "Your profile picture could not be read"
	replyInvalidArgs    = "Missing parameters, please read the docs"
	replyInvalidDegrees = "Invalid number of degrees to rotate, please read the docs"
	replyInvalidDelete  = "Please specify whether to delete the old pictures or not"
	replyEnabledPfp     = "Enabled profile picture rotation"
	replyPfpRunning     = "Profile picture rotation is already enabled"
	replyPfpNotEnabled  = "Profile picture rotation is not enabled"
	replyPfpDisabled    = "Profile picture rotation disabled"
	replyMissingTime    = "Time was not specified in bio"
	replyEnabledBio     = "Enabled bio clock"
	replyBioRunning     = "Bio clock is already enabled"
	replyBioNotEnabled  = "Bio clock is not enabled"
	replyDisabledBio    = "Disabled bio clock"
	replyEnabledName    = "Enabled name clock"
	replyNameRunning    = "Name clock is already enabled"
	replyNameNotEnabled = "Name clock is not enabled"
	replyDisabledName   = "Name clock disabled"
	replyHowManyPfps    = "Please specify how many profile pictures should be removed"
	replyInvalidCount   = "Invalid number of profile pictures to remove"
	replyRemovedPfps    = "Removed %d profile pic(s)"
	replyRestoreFailed  = "%s, but clearing the time failed: %v"
	replyError          = "Error: %v"
	replyUnknownCommand = "Unknown command %q"
)
