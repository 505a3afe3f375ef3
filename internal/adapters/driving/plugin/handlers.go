package plugin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driving"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

func handleAutoPfp(ctx context.Context, automation driving.ProfileAutomation, args []string) string {
	if len(args) != 2 {
		return replyInvalidArgs
	}

	degrees, err := strconv.Atoi(args[0])
	if err != nil {
		return replyInvalidDegrees
	}
	deletePrevious, err := strconv.ParseBool(args[1])
	if err != nil {
		return replyInvalidDelete
	}

	err = automation.StartRotation(ctx, degrees, deletePrevious)
	switch {
	case err == nil:
		return replyEnabledPfp
	case errors.Is(err, domain.ErrAlreadyRunning):
		return replyPfpRunning
	case errors.Is(err, domain.ErrNoProfilePicture):
		return replyMissingPfp
	case errors.Is(err, domain.ErrImageDecode):
		logger.Error("%s: %v", CmdAutoPfp, err)
		return replyImageError
	default:
		return errorReply(CmdAutoPfp, err)
	}
}

func handleStopAutoPfp(ctx context.Context, automation driving.ProfileAutomation, _ []string) string {
	err := automation.StopRotation(ctx)
	switch {
	case err == nil:
		return replyPfpDisabled
	case errors.Is(err, domain.ErrNotRunning):
		return replyPfpNotEnabled
	default:
		return errorReply(CmdStopAutoPfp, err)
	}
}

func handleAutoBio(ctx context.Context, automation driving.ProfileAutomation, args []string) string {
	if len(args) != 1 {
		return replyInvalidArgs
	}
	return clockStartReply(CmdAutoBio, automation.StartBioClock(ctx, args[0]), replyEnabledBio, replyBioRunning)
}

func handleStopAutoBio(ctx context.Context, automation driving.ProfileAutomation, _ []string) string {
	return clockStopReply(CmdStopAutoBio, automation.StopBioClock(ctx), replyDisabledBio, replyBioNotEnabled)
}

func handleAutoName(ctx context.Context, automation driving.ProfileAutomation, args []string) string {
	if len(args) != 1 {
		return replyInvalidArgs
	}
	return clockStartReply(CmdAutoName, automation.StartNameClock(ctx, args[0]), replyEnabledName, replyNameRunning)
}

func handleStopAutoName(ctx context.Context, automation driving.ProfileAutomation, _ []string) string {
	return clockStopReply(CmdStopAutoName, automation.StopNameClock(ctx), replyDisabledName, replyNameNotEnabled)
}

func clockStartReply(cmd string, err error, enabled, running string) string {
	switch {
	case err == nil:
		return enabled
	case errors.Is(err, domain.ErrMissingPlaceholder):
		return replyMissingTime
	case errors.Is(err, domain.ErrAlreadyRunning):
		return running
	default:
		return errorReply(cmd, err)
	}
}

// clockStopReply reports a stopped clock even when the final blank update failed.
func clockStopReply(cmd string, err error, disabled, notEnabled string) string {
	switch {
	case err == nil:
		return disabled
	case errors.Is(err, domain.ErrNotRunning):
		return notEnabled
	case errors.Is(err, domain.ErrTransientMutation):
		logger.Warn("%s: %v", cmd, err)
		return fmt.Sprintf(replyRestoreFailed, disabled, err)
	default:
		return errorReply(cmd, err)
	}
}

func handleDelPfp(ctx context.Context, automation driving.ProfileAutomation, args []string) string {
	if len(args) == 0 {
		return replyHowManyPfps
	}

	count, err := strconv.Atoi(args[0])
	if err != nil || count < 0 {
		return replyInvalidCount
	}

	removed, err := automation.PurgePhotos(ctx, count)
	switch {
	case err == nil:
		return fmt.Sprintf(replyRemovedPfps, removed)
	case errors.Is(err, domain.ErrInvalidCount):
		return replyInvalidCount
	default:
		return errorReply(CmdDelPfp, err)
	}
}

func handleAutoStatus(_ context.Context, automation driving.ProfileAutomation, _ []string) string {
	var b strings.Builder
	for i, s := range automation.Status() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", s.Feature, s.State)
		if s.Running() {
			fmt.Fprintf(&b, " (ticks=%d failures=%d)", s.Ticks, s.Failures)
		}
		if s.Detail != "" {
			fmt.Fprintf(&b, " %s", s.Detail)
		}
		if s.Running() && s.LastError != "" {
			fmt.Fprintf(&b, " last_error=%q", s.LastError)
		}
	}
	return b.String()
}

func errorReply(cmd string, err error) string {
	logger.Error("%s: %v", cmd, err)
	return fmt.Sprintf(replyError, err)
}
