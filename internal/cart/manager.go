package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aureliefinejewels/storefront-api/internal/models"
)

// Persister is an optional durable backing for session carts. Writes are
// best-effort: a persistence failure must never block or roll back the
// in-memory mutation.
type Persister interface {
	Save(ctx context.Context, sessionID string, items []models.CartItem) error
	Load(ctx context.Context, sessionID string) ([]models.CartItem, error)
	Delete(ctx context.Context, sessionID string) error
}

// Manager owns one Store per session id.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
}

// NewManager creates a session cart registry. persister may be nil for a
// purely volatile cart.
func NewManager(persister Persister) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		persister: persister,
	}
}

// Get returns the cart for a session, creating it empty on first use. When a
// persister is configured, a newly created store is seeded from the persisted
// snapshot if one exists.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {

	m.mu.Lock()

	store, ok := m.stores[sessionID]
	if !ok {
		store = NewStore()
		m.stores[sessionID] = store
	}

	m.mu.Unlock()

	if !ok && m.persister != nil {

		items, err := m.persister.Load(ctx, sessionID)
		if err != nil {
			slog.Warn("Failed to load persisted cart, starting empty",
				slog.String("sessionId", sessionID),
				slog.String("error", err.Error()))
		} else if len(items) > 0 {
			store.Restore(items)
		}
	}

	return store
}

// Persist writes the current cart snapshot for a session, fire and forget.
func (m *Manager) Persist(ctx context.Context, sessionID string) {

	if m.persister == nil {
		return
	}

	store := m.Get(ctx, sessionID)

	if err := m.persister.Save(ctx, sessionID, store.Items()); err != nil {
		slog.Warn("Failed to persist cart",
			slog.String("sessionId", sessionID),
			slog.String("error", err.Error()))
	}
}

// Drop clears a session's cart and removes its persisted snapshot.
func (m *Manager) Drop(ctx context.Context, sessionID string) {

	m.mu.Lock()
	store, ok := m.stores[sessionID]
	m.mu.Unlock()

	if ok {
		store.Clear()
	}

	if m.persister == nil {
		return
	}

	if err := m.persister.Delete(ctx, sessionID); err != nil {
		slog.Warn("Failed to delete persisted cart",
			slog.String("sessionId", sessionID),
			slog.String("error", err.Error()))
	}
}
