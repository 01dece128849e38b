// internal/album/transport_test.go
package album

import (
	"context"
	"sync"

	"github.com/user/albumgram/internal/types"
)

type captionEdit struct {
	chatID    int64
	messageID int
	caption   string
}

// fakeTransport records outbound calls and can be told to fail individual
// media-group sends by call index.
type fakeTransport struct {
	mu sync.Mutex

	sendCalls int
	groups    [][]types.MediaItem
	groupErrs map[int]error
	nextMsgID int

	texts []string

	edits   []captionEdit
	editErr error

	deleted   []int
	deleteErr error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		groupErrs: make(map[int]error),
		nextMsgID: 100,
	}
}

func (f *fakeTransport) SendMediaGroup(_ context.Context, chatID int64, items []types.MediaItem) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.sendCalls
	f.sendCalls++
	if err, ok := f.groupErrs[idx]; ok {
		return nil, err
	}
	f.groups = append(f.groups, items)
	ids := make([]int, len(items))
	for i := range ids {
		ids[i] = f.nextMsgID
		f.nextMsgID++
	}
	return ids, nil
}

func (f *fakeTransport) EditCaption(_ context.Context, chatID int64, messageID int, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, captionEdit{chatID: chatID, messageID: messageID, caption: caption})
	return nil
}

func (f *fakeTransport) DeleteMessage(_ context.Context, chatID int64, messageID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return true, nil
}

func (f *fakeTransport) SendText(chatID int64, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
}

func (f *fakeTransport) sentGroups() [][]types.MediaItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]types.MediaItem(nil), f.groups...)
}

func (f *fakeTransport) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func (f *fakeTransport) deletedIDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.deleted...)
}

func (f *fakeTransport) captionEdits() []captionEdit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]captionEdit(nil), f.edits...)
}
