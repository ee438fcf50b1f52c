package model

import "time"

// Item is a single saved piece of content: a text note or the raw bytes of
// an uploaded file. Items are append-only; the application never updates or
// deletes them.
type Item struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Content   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Item types. The set is open: unknown types are stored as-is, these are
// just the ones the application's forms produce.
const (
	TypeNote     = "note"
	TypeImage    = "image"
	TypeDocument = "document"
	TypePhoto    = "photo"
)

// UploadTypes lists the item types that arrive as multipart file uploads.
var UploadTypes = []string{TypeImage, TypeDocument, TypePhoto}

// IsUploadType reports whether typ is one of the file-upload item types.
func IsUploadType(typ string) bool {
	for _, t := range UploadTypes {
		if t == typ {
			return true
		}
	}
	return false
}
