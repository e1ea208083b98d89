package models

// PlayerSource is one third-party embed a client can load in an iframe.
// Sources are returned in priority order; Resumable means the embed accepts a
// start offset so playback can continue from a saved position.
type PlayerSource struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Recommended bool   `json:"recommended,omitempty"`
	Fast        bool   `json:"fast,omitempty"`
	Ads         bool   `json:"ads"`
	Resumable   bool   `json:"resumable,omitempty"`
}
