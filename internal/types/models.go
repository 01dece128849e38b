// internal/types/models.go
package types

import (
	"time"
)

// MediaKind classifies a received media reference.
type MediaKind int

const (
	MediaPhoto MediaKind = iota
	MediaVideo
	MediaAnimation
	MediaDocument
)

// Valid reports whether the kind is one the transport can place in a media group.
func (k MediaKind) Valid() bool {
	return k >= MediaPhoto && k <= MediaDocument
}

func (k MediaKind) String() string {
	switch k {
	case MediaPhoto:
		return "photo"
	case MediaVideo:
		return "video"
	case MediaAnimation:
		return "animation"
	case MediaDocument:
		return "document"
	default:
		return "unknown"
	}
}

// MediaItem is one received media reference. It is created once per inbound
// media event and never mutated; ownership moves from the session's pending
// buffer into the album it is dispatched with.
type MediaItem struct {
	FileID          string
	FileName        string
	Kind            MediaKind
	SourceMessageID int
	ReceivedAt      time.Time
}

func NewMediaItem(fileID, fileName string, kind MediaKind, sourceMessageID int) MediaItem {
	return MediaItem{
		FileID:          fileID,
		FileName:        fileName,
		Kind:            kind,
		SourceMessageID: sourceMessageID,
		ReceivedAt:      time.Now(),
	}
}

// Album is a bounded batch of media items delivered together as one grouped
// message. Items keep arrival order. SentMessageID is set once, from the
// first message of the sent group; only that message carries an editable
// caption.
type Album struct {
	ID            AlbumID
	Items         []MediaItem
	Caption       string
	SentMessageID int
	CreatedAt     time.Time
}

func NewAlbum(items []MediaItem) *Album {
	return &Album{
		ID:        NewAlbumID(),
		Items:     items,
		CreatedAt: time.Now(),
	}
}

// MediaEvent is an inbound message carrying one media reference.
type MediaEvent struct {
	ChatID          int64
	Kind            MediaKind
	FileID          string
	FileName        string
	SourceMessageID int
}

// ReplyTextEvent is an inbound reply with text, used for caption binding.
type ReplyTextEvent struct {
	ChatID             int64
	Text               string
	RepliedToMessageID int
}

// CommandEvent is an inbound slash command.
type CommandEvent struct {
	ChatID   int64
	Command  string
	Args     string
	FromUser string
}
