// internal/types/ids.go
package types

import (
	"github.com/google/uuid"
)

type AlbumID string

// NewAlbumID returns a short, locally unique album identifier.
func NewAlbumID() AlbumID {
	return AlbumID(uuid.New().String()[:8])
}
