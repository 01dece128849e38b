// internal/telegram/transport.go
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/albumgram/internal/album"
	"github.com/user/albumgram/internal/types"
)

// Transport implements types.Transport over the Telegram Bot API.
type Transport struct {
	bot *tgbotapi.BotAPI
}

func NewTransport(bot *tgbotapi.BotAPI) *Transport {
	return &Transport{bot: bot}
}

// SendMediaGroup sends the items as one grouped message and returns the sent
// message IDs in order.
func (t *Transport) SendMediaGroup(_ context.Context, chatID int64, items []types.MediaItem) ([]int, error) {
	media := make([]interface{}, 0, len(items))
	for _, item := range items {
		in, ok := inputMedia(item)
		if !ok {
			slog.Warn("skipping unsupported media kind", "chat_id", chatID, "kind", item.Kind.String())
			continue
		}
		media = append(media, in)
	}
	if len(media) < album.MinItemsPerAlbum {
		return nil, fmt.Errorf("media group needs at least %d items, have %d", album.MinItemsPerAlbum, len(media))
	}

	msgs, err := t.bot.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, media))
	if err != nil {
		return nil, fmt.Errorf("send media group: %w", err)
	}
	ids := make([]int, len(msgs))
	for i, m := range msgs {
		ids[i] = m.MessageID
	}
	return ids, nil
}

func (t *Transport) EditCaption(_ context.Context, chatID int64, messageID int, caption string) error {
	edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
	if _, err := t.bot.Request(edit); err != nil {
		return fmt.Errorf("edit caption: %w", err)
	}
	return nil
}

func (t *Transport) DeleteMessage(_ context.Context, chatID int64, messageID int) (bool, error) {
	resp, err := t.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	return resp.Ok, nil
}

// SendText delivers a plain text message, best-effort. Failures are logged,
// not returned: callers treat user notification as fire-and-forget.
func (t *Transport) SendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("send message failed", "chat_id", chatID, "error", err)
	}
}

// inputMedia converts a MediaItem into the transport's media-group entry.
func inputMedia(item types.MediaItem) (interface{}, bool) {
	file := tgbotapi.FileID(item.FileID)
	switch item.Kind {
	case types.MediaPhoto:
		return tgbotapi.NewInputMediaPhoto(file), true
	case types.MediaVideo:
		return tgbotapi.NewInputMediaVideo(file), true
	case types.MediaAnimation:
		return tgbotapi.NewInputMediaAnimation(file), true
	case types.MediaDocument:
		return tgbotapi.NewInputMediaDocument(file), true
	}
	return nil, false
}
