package store

import "sync"

// Manager はユーザーIDごとのStoreを持つ。
// ログイン中のセッションだけが対象で、永続化はWordPress側に任せる。
type Manager struct {
	mu     sync.Mutex
	stores map[int64]*Store
}

func NewManager() *Manager {
	return &Manager{stores: make(map[int64]*Store)}
}

// Get は該当ユーザーのStoreを返す。無ければ空で作る。
func (m *Manager) Get(userID int64) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.stores[userID]
	if !ok {
		st = New()
		m.stores[userID] = st
	}
	return st
}

// Dispose はセッション終了時に状態を破棄する。
func (m *Manager) Dispose(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stores, userID)
}
