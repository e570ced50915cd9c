package editor

import (
	"context"
	"sync"

	"menuboard/internal/models"
)

var (
	// ErrBusy is returned while another action on the same item is in flight.
	ErrBusy = models.NewConflictError("Another change to this item is in progress")
	// ErrNoPendingDelete is returned by ConfirmDelete without a prior RequestDelete.
	ErrNoPendingDelete = models.NewValidationError("No item selected for deletion")
	errItemMissing     = models.NewNotFoundMessage("Menu item not found")
)

// List is the admin menu item list.
type List struct {
	api API

	mu            sync.Mutex
	items         []models.MenuItem
	pending       map[string]bool
	pendingDelete string
}

// NewList creates a list over items.
func NewList(api API, items []models.MenuItem) *List {
	return &List{
		api:     api,
		items:   append([]models.MenuItem(nil), items...),
		pending: make(map[string]bool),
	}
}

// Items returns a copy of the current items.
func (l *List) Items() []models.MenuItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.MenuItem(nil), l.items...)
}

// Empty reports whether the list has no items.
func (l *List) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items) == 0
}

// Pending reports whether a hide or delete call for id is in flight.
func (l *List) Pending(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending[id]
}

// ToggleHidden flips the hidden flag of an item through the API.
func (l *List) ToggleHidden(ctx context.Context, id string) error {
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return errItemMissing
	}
	if l.pending[id] {
		l.mu.Unlock()
		return ErrBusy
	}
	hidden := !l.items[i].Hidden
	l.pending[id] = true
	l.mu.Unlock()

	updated, err := l.api.SetHidden(ctx, id, hidden)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
	if err != nil {
		return err
	}
	if i := l.indexOf(id); i >= 0 {
		if updated != nil {
			l.items[i] = *updated
		} else {
			l.items[i].Hidden = hidden
		}
	}
	return nil
}

// RequestDelete asks for confirmation before deleting id.
func (l *List) RequestDelete(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = id
}

// PendingDelete returns the id awaiting confirmation.
func (l *List) PendingDelete() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingDelete
}

// CancelDelete drops the pending confirmation.
func (l *List) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = ""
}

// ConfirmDelete deletes the item selected by RequestDelete.
func (l *List) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	id := l.pendingDelete
	if id == "" {
		l.mu.Unlock()
		return ErrNoPendingDelete
	}
	if l.pending[id] {
		l.mu.Unlock()
		return ErrBusy
	}
	l.pending[id] = true
	l.mu.Unlock()

	err := l.api.DeleteMenuItem(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
	if err != nil {
		return err
	}
	l.pendingDelete = ""
	if i := l.indexOf(id); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
	return nil
}

// Upsert replaces the item with the same id or appends it.
func (l *List) Upsert(item models.MenuItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(item.ID); i >= 0 {
		l.items[i] = item
		return
	}
	l.items = append(l.items, item)
}

func (l *List) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
