package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/internal/cart"
	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/dialog"
	"github.com/angelmondragon/shopfront/internal/notifications"
)

// Snapshot is the read model handed to views.
type Snapshot struct {
	Catalog       catalog.FetchState `json:"catalog"`
	Cart          CartView           `json:"cart"`
	Dialog        DialogView         `json:"dialog"`
	Notification  NotificationView   `json:"notification"`
	PendingAction *PendingAction     `json:"pendingAction,omitempty"`
}

type CartView struct {
	Entries []cart.Entry    `json:"entries"`
	Total   decimal.Decimal `json:"total"`
}

type DialogView struct {
	dialog.State
	Buttons dialog.ButtonSet `json:"buttons"`
	Icon    *dialog.Glyph    `json:"icon,omitempty"`
}

type NotificationView struct {
	notifications.Notification
	Icon *notifications.Glyph `json:"icon,omitempty"`
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	var pending *PendingAction
	if s.pending != nil {
		copied := *s.pending
		pending = &copied
	}
	dialogState := s.dialog.State()
	s.mu.Unlock()

	view := DialogView{State: dialogState, Buttons: dialog.Buttons(dialogState)}
	if dialogState.IsOpen {
		glyph := dialog.Icon(dialogState.Variant)
		view.Icon = &glyph
	}

	note := NotificationView{Notification: s.notifications.State()}
	if glyph, ok := notifications.Icon(note.Variant); ok && note.IsVisible {
		note.Icon = &glyph
	}

	return Snapshot{
		Catalog:       s.catalog.State(),
		Cart:          CartView{Entries: s.cart.Entries(), Total: s.cart.Total()},
		Dialog:        view,
		Notification:  note,
		PendingAction: pending,
	}
}
