// internal/album/caption.go
package album

import (
	"context"
	"log/slog"

	"github.com/user/albumgram/internal/session"
	"github.com/user/albumgram/internal/types"
)

const (
	msgNoRecentAlbum  = "❌ I could not find a recent album to add a caption to."
	msgReplyMismatch  = "❌ Please reply directly to the album to add a caption."
	msgCaptionFailed  = "❌ An error occurred while adding the caption. Please try again."
	msgCaptionApplied = "✅ Caption added!"
)

// CaptionBinder applies a reply's text as the caption of the chat's most
// recently dispatched album.
type CaptionBinder struct {
	transport types.Transport
	sessions  *session.Store
}

func NewCaptionBinder(transport types.Transport, sessions *session.Store) *CaptionBinder {
	return &CaptionBinder{transport: transport, sessions: sessions}
}

// HandleCaption matches an inbound reply against the last album's sent
// message and edits that message's caption. Only the first message of a
// media group carries an editable caption, so the edit targets it alone.
func (b *CaptionBinder) HandleCaption(ctx context.Context, ev types.ReplyTextEvent) {
	sess, ok := b.sessions.Get(ev.ChatID)
	if !ok || sess.LastAlbum() == nil {
		b.transport.SendText(ev.ChatID, msgNoRecentAlbum)
		return
	}

	a := sess.LastAlbum()
	if ev.RepliedToMessageID != a.SentMessageID {
		slog.Info("caption reply does not target the last album",
			"chat_id", ev.ChatID, "reply_to", ev.RepliedToMessageID, "album_message", a.SentMessageID)
		b.transport.SendText(ev.ChatID, msgReplyMismatch)
		return
	}

	a.Caption = ev.Text
	if err := b.transport.EditCaption(ctx, ev.ChatID, a.SentMessageID, ev.Text); err != nil {
		slog.Error("edit album caption failed", "chat_id", ev.ChatID, "album_id", a.ID, "error", err)
		b.transport.SendText(ev.ChatID, msgCaptionFailed)
		return
	}

	sess.Touch()
	slog.Info("album caption updated", "chat_id", ev.ChatID, "album_id", a.ID)
	b.transport.SendText(ev.ChatID, msgCaptionApplied)
}
