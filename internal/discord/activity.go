package discord

import "time"

// Activity is the rich presence shown on the user's profile
type Activity struct {
	Details    string      `json:"details,omitempty"`
	State      string      `json:"state,omitempty"`
	Timestamps *Timestamps `json:"timestamps,omitempty"`
	Assets     *Assets     `json:"assets,omitempty"`
}

// Timestamps holds the elapsed-time anchor in Unix milliseconds
type Timestamps struct {
	Start int64 `json:"start,omitempty"`
}

// StartedAt returns timestamps anchored at t, or nil for the zero time
func StartedAt(t time.Time) *Timestamps {
	if t.IsZero() {
		return nil
	}
	return &Timestamps{Start: t.UnixMilli()}
}

// Assets names the images uploaded to the Discord application
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}
