// internal/telegram/adapter_test.go
package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/albumgram/internal/types"
)

func baseMessage() *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 17,
		Chat:      &tgbotapi.Chat{ID: 42},
	}
}

func TestExtractMediaPicksLargestPhoto(t *testing.T) {
	msg := baseMessage()
	msg.Photo = []tgbotapi.PhotoSize{
		{FileID: "small-file-id", FileSize: 100},
		{FileID: "large-file-id", FileSize: 9000},
		{FileID: "medium-file-id", FileSize: 500},
	}

	ev, ok := extractMedia(msg)
	if !ok {
		t.Fatal("expected photo to be extracted")
	}
	if ev.Kind != types.MediaPhoto {
		t.Errorf("kind: got %s", ev.Kind)
	}
	if ev.FileID != "large-file-id" {
		t.Errorf("expected the largest size, got %s", ev.FileID)
	}
	if ev.ChatID != 42 || ev.SourceMessageID != 17 {
		t.Errorf("event addressing wrong: %+v", ev)
	}
	if !strings.HasPrefix(ev.FileName, "photo_") || !strings.HasSuffix(ev.FileName, ".jpg") {
		t.Errorf("unexpected generated file name %q", ev.FileName)
	}
}

func TestExtractMediaVideoFileNameFallback(t *testing.T) {
	msg := baseMessage()
	msg.Video = &tgbotapi.Video{FileID: "video-file-id-xyz"}

	ev, ok := extractMedia(msg)
	if !ok {
		t.Fatal("expected video to be extracted")
	}
	if ev.Kind != types.MediaVideo {
		t.Errorf("kind: got %s", ev.Kind)
	}
	if ev.FileName != "video_video-file.mp4" {
		t.Errorf("unexpected fallback name %q", ev.FileName)
	}

	msg.Video.FileName = "holiday.mp4"
	ev, _ = extractMedia(msg)
	if ev.FileName != "holiday.mp4" {
		t.Errorf("expected original name kept, got %q", ev.FileName)
	}
}

func TestExtractMediaDocumentAndAnimation(t *testing.T) {
	msg := baseMessage()
	msg.Document = &tgbotapi.Document{FileID: "doc-id", FileName: "report.pdf"}
	ev, ok := extractMedia(msg)
	if !ok || ev.Kind != types.MediaDocument || ev.FileName != "report.pdf" {
		t.Errorf("document extraction wrong: ok=%v ev=%+v", ok, ev)
	}

	msg = baseMessage()
	msg.Animation = &tgbotapi.Animation{FileID: "anim-id"}
	ev, ok = extractMedia(msg)
	if !ok || ev.Kind != types.MediaAnimation {
		t.Errorf("animation extraction wrong: ok=%v ev=%+v", ok, ev)
	}
	if !strings.HasSuffix(ev.FileName, ".gif") {
		t.Errorf("unexpected animation name %q", ev.FileName)
	}
}

func TestExtractMediaUnsupported(t *testing.T) {
	msg := baseMessage()
	msg.Voice = &tgbotapi.Voice{FileID: "voice-id"}

	if !hasMedia(msg) {
		t.Error("voice message should count as media")
	}
	if _, ok := extractMedia(msg); ok {
		t.Error("voice must not extract into a media event")
	}
}

func TestHasMediaPlainText(t *testing.T) {
	msg := baseMessage()
	msg.Text = "hello"
	if hasMedia(msg) {
		t.Error("plain text must not count as media")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abcdefghijKLMNOP"); got != "abcdefghij" {
		t.Errorf("got %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short input must pass through, got %q", got)
	}
}
