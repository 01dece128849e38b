// internal/album/dispatcher.go
package album

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/albumgram/internal/batch"
	"github.com/user/albumgram/internal/session"
	"github.com/user/albumgram/internal/types"
)

const (
	// DefaultDebounce is the quiet period after the last arrival before the
	// pending buffer is flushed into albums.
	DefaultDebounce = 3 * time.Second
	// DefaultCleanupDelay gives a sent album time to render client-side
	// before the original messages are deleted.
	DefaultCleanupDelay = 1 * time.Second
)

const (
	msgNeedMoreMedia = "ℹ️ To create an album you need to send at least 2 media items. Send more media and try again."
	msgSendFailed    = "❌ An error occurred while sending the album. Please try again."
	msgUnsupported   = "❌ Sorry, I could not process this kind of media."
	msgDroppedItem   = "⚠️ The last remaining item was not sent: an album needs at least 2 media items."
)

// DispatcherConfig tunes batching behavior. Zero values fall back to the
// defaults above.
type DispatcherConfig struct {
	Debounce     time.Duration
	MaxPerAlbum  int
	CleanupDelay time.Duration
}

// Dispatcher orchestrates the media path: it buffers inbound media per chat,
// debounces a flush through the scheduler, partitions the buffer into
// albums, sends them, and cleans up the original messages afterwards.
type Dispatcher struct {
	transport types.Transport
	sessions  *session.Store
	scheduler *batch.Scheduler

	debounce     time.Duration
	maxPerAlbum  int
	cleanupDelay time.Duration
}

func NewDispatcher(transport types.Transport, sessions *session.Store, scheduler *batch.Scheduler, cfg DispatcherConfig) *Dispatcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MaxPerAlbum <= 0 {
		cfg.MaxPerAlbum = MaxItemsPerAlbum
	}
	if cfg.CleanupDelay <= 0 {
		cfg.CleanupDelay = DefaultCleanupDelay
	}
	return &Dispatcher{
		transport:    transport,
		sessions:     sessions,
		scheduler:    scheduler,
		debounce:     cfg.Debounce,
		maxPerAlbum:  cfg.MaxPerAlbum,
		cleanupDelay: cfg.CleanupDelay,
	}
}

// HandleMedia buffers one received media item for its chat and re-arms the
// chat's flush timer with the full debounce delay.
func (d *Dispatcher) HandleMedia(ev types.MediaEvent) {
	if !ev.Kind.Valid() {
		slog.Warn("unsupported media kind", "chat_id", ev.ChatID, "kind", int(ev.Kind))
		d.transport.SendText(ev.ChatID, msgUnsupported)
		return
	}

	sess := d.sessions.GetOrCreate(ev.ChatID)
	item := types.NewMediaItem(ev.FileID, ev.FileName, ev.Kind, ev.SourceMessageID)
	n := sess.AddMedia(item)
	slog.Info("media buffered", "chat_id", ev.ChatID, "kind", ev.Kind.String(), "pending", n)

	chatID := ev.ChatID
	d.scheduler.Reschedule(chatID, d.debounce, func(ctx context.Context) error {
		return d.flush(ctx, chatID)
	})
}

// CreateAlbumsNow flushes the chat's pending buffer immediately, bypassing
// the debounce. Any armed timer for the chat is dropped first.
func (d *Dispatcher) CreateAlbumsNow(ctx context.Context, chatID int64) error {
	d.scheduler.Cancel(chatID)
	return d.flush(ctx, chatID)
}

// Reset drops the chat's session along with any armed flush timer.
func (d *Dispatcher) Reset(chatID int64) {
	d.scheduler.Cancel(chatID)
	d.sessions.Remove(chatID)
}

// flush drains the pending buffer, partitions it into albums, and sends each
// one in order. At most one flush runs per chat at a time: the scheduler
// keeps a single live timer per key and manual flushes cancel it first.
//
// Transport failures are handled here (logged, user notified once) and do
// not propagate; the returned error covers only unexpected conditions.
func (d *Dispatcher) flush(ctx context.Context, chatID int64) error {
	sess, ok := d.sessions.Get(chatID)
	if !ok || sess.PendingLen() == 0 {
		slog.Warn("flush with no pending media", "chat_id", chatID)
		return nil
	}

	items, n := sess.DrainAtLeast(MinItemsPerAlbum)
	if items == nil {
		// A lone buffered item stays put so the user can still add to it.
		slog.Info("not enough media for an album", "chat_id", chatID, "pending", n)
		d.transport.SendText(chatID, msgNeedMoreMedia)
		return nil
	}

	chunks, droppedItems := Partition(items, d.maxPerAlbum)
	slog.Info("flushing pending media", "chat_id", chatID, "items", len(items), "albums", len(chunks))

	var (
		failed     bool
		lastOK     bool
		dispatched []types.MediaItem
	)
	for i, chunk := range chunks {
		lastOK = false
		a := types.NewAlbum(chunk)
		ids, err := d.transport.SendMediaGroup(ctx, chatID, chunk)
		if err != nil {
			slog.Error("send media group failed",
				"chat_id", chatID, "album", i+1, "albums", len(chunks), "error", err)
			if i == 0 {
				d.transport.SendText(chatID, msgSendFailed)
			}
			failed = true
			continue
		}
		if len(ids) > 0 {
			a.SentMessageID = ids[0]
		}
		sess.SetLastAlbum(a)
		dispatched = append(dispatched, chunk...)
		slog.Info("album sent", "chat_id", chatID, "album_id", a.ID,
			"items", len(chunk), "message_id", a.SentMessageID)
		lastOK = true
	}

	if len(droppedItems) > 0 {
		slog.Warn("dropped undersized trailing chunk", "chat_id", chatID, "items", len(droppedItems))
		d.transport.SendText(chatID, msgDroppedItem)
	}

	if lastOK {
		if len(chunks) > 1 {
			d.transport.SendText(chatID, fmt.Sprintf(
				"✅ Created %d albums! To add a caption, reply to an album with the text you want.", len(chunks)))
		} else {
			d.transport.SendText(chatID,
				"✅ Album created! To add a caption, reply to the album with the text you want.")
		}
	}

	if !failed {
		d.scheduleCleanup(chatID, dispatched)
	}
	return nil
}

// scheduleCleanup deletes the original source messages a short while after
// the albums are sent. Deletion is best-effort: individual failures are
// logged and the rest proceed.
func (d *Dispatcher) scheduleCleanup(chatID int64, items []types.MediaItem) {
	time.AfterFunc(d.cleanupDelay, func() {
		deleted := 0
		for _, item := range items {
			ok, err := d.transport.DeleteMessage(context.Background(), chatID, item.SourceMessageID)
			if err != nil {
				slog.Warn("delete source message failed",
					"chat_id", chatID, "message_id", item.SourceMessageID, "error", err)
				continue
			}
			if ok {
				deleted++
			}
		}
		slog.Info("deleted source messages", "chat_id", chatID, "deleted", deleted, "total", len(items))
	})
}
