// internal/telegram/adapter.go

// Package telegram bridges the Telegram Bot API to the album pipeline: it
// long-polls for updates, turns them into media/caption events, handles the
// command surface, and implements the outbound transport.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/albumgram/internal/album"
	"github.com/user/albumgram/internal/types"
)

// Adapter drives the inbound update loop.
type Adapter struct {
	bot        *tgbotapi.BotAPI
	dispatcher *album.Dispatcher
	captions   *album.CaptionBinder
}

// NewBot authenticates against the Telegram Bot API.
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return bot, nil
}

func NewAdapter(bot *tgbotapi.BotAPI, dispatcher *album.Dispatcher, captions *album.CaptionBinder) *Adapter {
	return &Adapter{
		bot:        bot,
		dispatcher: dispatcher,
		captions:   captions,
	}
}

// Start begins long-polling for Telegram updates.
func (a *Adapter) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			a.handleMessage(ctx, update.Message)
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return
		}
	}
}

func (a *Adapter) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		a.handleCommand(ctx, msg)
		return
	}

	if hasMedia(msg) {
		ev, ok := extractMedia(msg)
		if !ok {
			slog.Warn("message carries unsupported media", "chat_id", chatID)
			a.send(chatID, "❌ Sorry, I could not process this kind of media.")
			return
		}
		a.dispatcher.HandleMedia(ev)
		return
	}

	if msg.ReplyToMessage != nil && msg.Text != "" {
		a.captions.HandleCaption(ctx, types.ReplyTextEvent{
			ChatID:             chatID,
			Text:               msg.Text,
			RepliedToMessageID: msg.ReplyToMessage.MessageID,
		})
		return
	}

	a.send(chatID, "Send media files (photos, videos) to build an album, or use /help to see the available commands.")
}

func (a *Adapter) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	ev := types.CommandEvent{
		ChatID:  msg.Chat.ID,
		Command: msg.Command(),
		Args:    msg.CommandArguments(),
	}
	if msg.From != nil {
		ev.FromUser = msg.From.UserName
	}
	chatID := ev.ChatID
	slog.Info("command received", "chat_id", chatID, "command", ev.Command, "user", ev.FromUser)

	switch ev.Command {
	case "start":
		a.send(chatID, "👋 Welcome to Albumgram!\n\n"+
			"This bot turns your media uploads into albums.\n\n"+
			"To get started:\n"+
			"1. Send several photos and/or videos\n"+
			"2. Wait a few seconds while the album is created\n"+
			"3. Reply to the album with the text you want as its caption\n\n"+
			"Use /help to see all available commands.")

	case "help":
		a.send(chatID, "🔍 *Available commands:*\n\n"+
			"/start - Start the bot and see the welcome message\n"+
			"/help - Show this help message\n"+
			"/album - Build albums from the media sent so far\n"+
			"/cancel - Discard the current album in progress\n"+
			"/about - Information about the bot\n\n"+
			"*How to use:*\n"+
			"1. Send several photos and/or videos\n"+
			"2. Wait a few seconds while the album is created\n"+
			"3. Reply to the album with the text you want as its caption")

	case "album":
		if err := a.dispatcher.CreateAlbumsNow(ctx, chatID); err != nil {
			slog.Error("manual flush failed", "chat_id", chatID, "error", err)
		}

	case "cancel":
		a.dispatcher.Reset(chatID)
		a.send(chatID, "✅ Current operation cancelled. You can start a new album by sending media.")

	case "about":
		a.send(chatID, "📱 *Albumgram*\n\n"+
			"A bot for building and captioning media albums on Telegram.\n\n"+
			"Features:\n"+
			"• Build albums from photos and videos\n"+
			"• Add or change captions by replying\n"+
			"• Originals are tidied up after the album is sent")

	default:
		a.send(chatID, "Unrecognized command. Use /help to see the available commands.")
	}
}

// send delivers text with Markdown formatting, falling back to plain text
// when the service rejects the markup.
func (a *Adapter) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := a.bot.Send(msg); err != nil {
		msg.ParseMode = ""
		if _, err := a.bot.Send(msg); err != nil {
			slog.Error("send message failed", "chat_id", chatID, "error", err)
		}
	}
}

// hasMedia reports whether the message carries any media payload, supported
// or not.
func hasMedia(msg *tgbotapi.Message) bool {
	return len(msg.Photo) > 0 || msg.Video != nil || msg.Animation != nil ||
		msg.Document != nil || msg.Audio != nil || msg.Voice != nil ||
		msg.Sticker != nil || msg.VideoNote != nil
}

// extractMedia pulls the media reference out of a message. Photos arrive as
// multiple sizes; the highest-resolution one is kept. Missing file names get
// generated fallbacks.
func extractMedia(msg *tgbotapi.Message) (types.MediaEvent, bool) {
	ev := types.MediaEvent{ChatID: msg.Chat.ID, SourceMessageID: msg.MessageID}

	switch {
	case len(msg.Photo) > 0:
		photo := msg.Photo[0]
		for _, p := range msg.Photo[1:] {
			if p.FileSize > photo.FileSize {
				photo = p
			}
		}
		ev.Kind = types.MediaPhoto
		ev.FileID = photo.FileID
		ev.FileName = "photo_" + shortID(photo.FileID) + ".jpg"

	case msg.Video != nil:
		ev.Kind = types.MediaVideo
		ev.FileID = msg.Video.FileID
		ev.FileName = msg.Video.FileName
		if ev.FileName == "" {
			ev.FileName = "video_" + shortID(ev.FileID) + ".mp4"
		}

	case msg.Animation != nil:
		ev.Kind = types.MediaAnimation
		ev.FileID = msg.Animation.FileID
		ev.FileName = "animation_" + shortID(ev.FileID) + ".gif"

	case msg.Document != nil:
		ev.Kind = types.MediaDocument
		ev.FileID = msg.Document.FileID
		ev.FileName = msg.Document.FileName
		if ev.FileName == "" {
			ev.FileName = "document_" + shortID(ev.FileID)
		}

	default:
		return types.MediaEvent{}, false
	}
	return ev, true
}

func shortID(fileID string) string {
	if len(fileID) > 10 {
		return fileID[:10]
	}
	return fileID
}
