package domain

import "time"

// PurgeUnlimited requests every profile photo when used as a limit.
const PurgeUnlimited = 0

// Photo is a profile picture known to the network client.
type Photo struct {
	// ID is the client-specific photo identifier.
	ID string

	// CreatedAt is when the photo was set.
	CreatedAt time.Time
}

// FileHandle references an uploaded file that can be set as a profile photo.
type FileHandle struct {
	ID   string
	Name string
	Size int
}

// ProfileUpdate changes account profile fields.
// A nil field is left untouched.
type ProfileUpdate struct {
	About     *string
	FirstName *string
}

// AboutUpdate builds an update that only changes the bio.
func AboutUpdate(about string) ProfileUpdate {
	return ProfileUpdate{About: &about}
}

// FirstNameUpdate builds an update that only changes the first name.
func FirstNameUpdate(name string) ProfileUpdate {
	return ProfileUpdate{FirstName: &name}
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.About == nil && u.FirstName == nil
}
