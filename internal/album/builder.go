// internal/album/builder.go

// Package album turns a chat's pending media into size-bounded media groups
// and drives them through the transport.
package album

import (
	"github.com/user/albumgram/internal/types"
)

const (
	// MaxItemsPerAlbum is the transport's upper bound on one media group.
	MaxItemsPerAlbum = 10
	// MinItemsPerAlbum is the transport's lower bound: a media group needs
	// at least two items.
	MinItemsPerAlbum = 2
)

// Partition splits items, in arrival order, into consecutive chunks of up to
// maxPerAlbum. A trailing chunk that would hold fewer than MinItemsPerAlbum
// items cannot be sent as a media group; it is returned in dropped while the
// preceding full chunks proceed without it. Fewer than MinItemsPerAlbum
// items in total yields no chunks at all.
func Partition(items []types.MediaItem, maxPerAlbum int) (chunks [][]types.MediaItem, dropped []types.MediaItem) {
	if maxPerAlbum <= 0 {
		maxPerAlbum = MaxItemsPerAlbum
	}
	if len(items) < MinItemsPerAlbum {
		return nil, nil
	}
	for i := 0; i < len(items); i += maxPerAlbum {
		end := i + maxPerAlbum
		if end > len(items) {
			end = len(items)
		}
		chunk := items[i:end:end]
		if len(chunk) < MinItemsPerAlbum {
			dropped = chunk
			break
		}
		chunks = append(chunks, chunk)
	}
	return chunks, dropped
}
