// internal/album/caption_test.go
package album

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/albumgram/internal/session"
	"github.com/user/albumgram/internal/types"
)

func newCaptionFixture(t *testing.T) (*CaptionBinder, *session.Store, *fakeTransport) {
	t.Helper()
	ft := newFakeTransport()
	store := session.NewStore(time.Hour, time.Hour)
	return NewCaptionBinder(ft, store), store, ft
}

func dispatchedAlbum(store *session.Store, chatID int64, sentMessageID int) *types.Album {
	a := types.NewAlbum(makeItems(2))
	a.SentMessageID = sentMessageID
	store.GetOrCreate(chatID).SetLastAlbum(a)
	return a
}

func TestCaptionAppliedOnMatchingReply(t *testing.T) {
	binder, store, ft := newCaptionFixture(t)
	a := dispatchedAlbum(store, 9, 100)

	binder.HandleCaption(context.Background(), types.ReplyTextEvent{
		ChatID:             9,
		Text:               "caption text",
		RepliedToMessageID: 100,
	})

	if a.Caption != "caption text" {
		t.Errorf("expected caption set, got %q", a.Caption)
	}
	edits := ft.captionEdits()
	if len(edits) != 1 {
		t.Fatalf("expected 1 caption edit, got %d", len(edits))
	}
	if e := edits[0]; e.chatID != 9 || e.messageID != 100 || e.caption != "caption text" {
		t.Errorf("unexpected edit %+v", e)
	}
	if n := countTexts(ft.sentTexts(), "Caption added"); n != 1 {
		t.Errorf("expected confirmation, got %d", n)
	}
}

func TestCaptionMismatchLeavesAlbumUntouched(t *testing.T) {
	binder, store, ft := newCaptionFixture(t)
	a := dispatchedAlbum(store, 9, 100)

	binder.HandleCaption(context.Background(), types.ReplyTextEvent{
		ChatID:             9,
		Text:               "caption text",
		RepliedToMessageID: 55,
	})

	if a.Caption != "" {
		t.Errorf("caption must stay empty on mismatch, got %q", a.Caption)
	}
	if len(ft.captionEdits()) != 0 {
		t.Error("no edit expected on mismatch")
	}
	if n := countTexts(ft.sentTexts(), "reply directly to the album"); n != 1 {
		t.Errorf("expected mismatch message, got %d", n)
	}
}

func TestCaptionWithoutRecentAlbum(t *testing.T) {
	binder, _, ft := newCaptionFixture(t)

	binder.HandleCaption(context.Background(), types.ReplyTextEvent{
		ChatID:             11,
		Text:               "hello",
		RepliedToMessageID: 100,
	})

	if n := countTexts(ft.sentTexts(), "could not find a recent album"); n != 1 {
		t.Errorf("expected no-album message, got %d", n)
	}
	if len(ft.captionEdits()) != 0 {
		t.Error("no edit expected without a session")
	}
}

func TestCaptionEditFailureReported(t *testing.T) {
	binder, store, ft := newCaptionFixture(t)
	dispatchedAlbum(store, 9, 100)
	ft.editErr = errors.New("bad request")

	binder.HandleCaption(context.Background(), types.ReplyTextEvent{
		ChatID:             9,
		Text:               "caption text",
		RepliedToMessageID: 100,
	})

	if n := countTexts(ft.sentTexts(), "error occurred while adding the caption"); n != 1 {
		t.Errorf("expected retry message, got %d", n)
	}
}
