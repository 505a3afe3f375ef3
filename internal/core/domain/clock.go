package domain

import "strings"

// TimePlaceholder is replaced with the current time in clock templates.
const TimePlaceholder = "{time}"

// DefaultTimeFormat renders hour:minute on a 24-hour clock.
const DefaultTimeFormat = "15:04"

// ClockState holds the template of a bio or name clock.
type ClockState struct {
	Template string
}

// HasTimePlaceholder reports whether the template contains the time placeholder.
func HasTimePlaceholder(template string) bool {
	return strings.Contains(template, TimePlaceholder)
}

// RenderTemplate replaces every time placeholder with value.
// Other braces in the template are left untouched.
func RenderTemplate(template, value string) string {
	return strings.ReplaceAll(template, TimePlaceholder, value)
}

// Render formats the template with the given time value.
func (c ClockState) Render(value string) string {
	return RenderTemplate(c.Template, value)
}

// Blank renders the template with an empty time, used when a clock stops.
func (c ClockState) Blank() string {
	return RenderTemplate(c.Template, "")
}
