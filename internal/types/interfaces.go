// internal/types/interfaces.go
package types

import (
	"context"
)

// Transport delivers outbound traffic to the chat service. All methods are
// safe for concurrent use.
type Transport interface {
	// SendMediaGroup sends 2..10 items as one grouped message and returns
	// the message IDs of the sent group, in order.
	SendMediaGroup(ctx context.Context, chatID int64, items []MediaItem) ([]int, error)
	// EditCaption replaces the caption of a single sent message.
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error
	// DeleteMessage removes a message, reporting whether the service
	// confirmed the deletion.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) (bool, error)
	// SendText delivers a plain text message, best-effort.
	SendText(chatID int64, text string)
}
