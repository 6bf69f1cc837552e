package models

import "time"

// Artifact is a named binary blob attached to a conversation turn.
type Artifact struct {
	Name       string
	MimeType   string
	Data       []byte
	AttachedAt time.Time
}
