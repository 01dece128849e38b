// internal/types/models_test.go
package types

import (
	"testing"
)

func TestMediaKindValid(t *testing.T) {
	for _, k := range []MediaKind{MediaPhoto, MediaVideo, MediaAnimation, MediaDocument} {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if MediaKind(-1).Valid() || MediaKind(42).Valid() {
		t.Error("out-of-range kinds must be invalid")
	}
}

func TestMediaKindString(t *testing.T) {
	cases := map[MediaKind]string{
		MediaPhoto:     "photo",
		MediaVideo:     "video",
		MediaAnimation: "animation",
		MediaDocument:  "document",
		MediaKind(99):  "unknown",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("kind %d: got %q, want %q", int(k), k.String(), want)
		}
	}
}

func TestNewAlbumID(t *testing.T) {
	a := NewAlbumID()
	b := NewAlbumID()
	if len(a) != 8 || len(b) != 8 {
		t.Errorf("album IDs should be 8 chars, got %q and %q", a, b)
	}
	if a == b {
		t.Error("album IDs should be unique")
	}
}

func TestNewAlbumKeepsItemOrder(t *testing.T) {
	items := []MediaItem{
		NewMediaItem("first", "a.jpg", MediaPhoto, 1),
		NewMediaItem("second", "b.jpg", MediaPhoto, 2),
	}
	a := NewAlbum(items)
	if a.ID == "" {
		t.Error("album must get an ID at construction")
	}
	if a.Items[0].FileID != "first" || a.Items[1].FileID != "second" {
		t.Error("album items out of order")
	}
	if a.SentMessageID != 0 {
		t.Error("sent message ID must start unset")
	}
}
