package bot

import "sync"

type captureAction int

const (
	captureNone captureAction = iota
	captureAdminAdd
	captureAdminRemove
)

// captureTable remembers, per chat, which bare administrator command is
// waiting for a numeric id in the next message. The marker has no timeout;
// it lives until consumed or overwritten by another bare command.
type captureTable struct {
	mu    sync.RWMutex
	chats map[int64]captureAction
}

func newCaptureTable() *captureTable {
	return &captureTable{
		chats: make(map[int64]captureAction),
	}
}

func (t *captureTable) Set(chatID int64, action captureAction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chats[chatID] = action
}

func (t *captureTable) Get(chatID int64) captureAction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.chats[chatID]
}

func (t *captureTable) Clear(chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.chats, chatID)
}
