package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"

	"github.com/angelmondragon/shopfront/internal/cart"
	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/dialog"
	"github.com/angelmondragon/shopfront/internal/notifications"
	"github.com/angelmondragon/shopfront/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/metrics"
)

// DefaultConfirmDelay is the busy period of a generic confirmation.
const DefaultConfirmDelay = 2 * time.Second

// ServiceParams wires the storefront orchestrator. Only Catalog is required.
type ServiceParams struct {
	Catalog       *catalog.Machine
	Cart          *cart.Store
	Dialog        *dialog.Machine
	Notifications *notifications.Machine
	Clock         clock.Clock
	ConfirmDelay  time.Duration
	Logger        *logger.Logger
	Metrics       *metrics.StorefrontMetrics
}

// Service composes the catalog, cart, dialog and notification machines. Views read through
// Snapshot and write through the intent methods only.
type Service struct {
	catalog       *catalog.Machine
	cart          *cart.Store
	dialog        *dialog.Machine
	notifications *notifications.Machine
	clock         clock.Clock
	confirmDelay  time.Duration
	logg          *logger.Logger
	metrics       *metrics.StorefrontMetrics

	mu           sync.Mutex
	pending      *PendingAction
	confirmTimer *clock.Timer
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog machine required")
	}
	if params.ConfirmDelay < 0 {
		return nil, fmt.Errorf("confirm delay must not be negative")
	}
	clk := params.Clock
	if clk == nil {
		clk = clock.New()
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	svc := &Service{
		catalog:       params.Catalog,
		cart:          params.Cart,
		dialog:        params.Dialog,
		notifications: params.Notifications,
		clock:         clk,
		confirmDelay:  params.ConfirmDelay,
		logg:          logg,
		metrics:       params.Metrics,
	}
	if svc.cart == nil {
		svc.cart = cart.NewStore()
	}
	if svc.dialog == nil {
		svc.dialog = dialog.NewMachine()
	}
	if svc.notifications == nil {
		svc.notifications = notifications.NewMachine(notifications.MachineParams{
			Clock:   clk,
			Logger:  logg,
			Metrics: params.Metrics,
		})
	}
	return svc, nil
}

// FetchCatalog runs one catalog request. The outcome lands in the fetch state.
func (s *Service) FetchCatalog(ctx context.Context) catalog.FetchState {
	return s.catalog.Fetch(ctx)
}

// Propose holds an add-to-cart action and opens the dialog that guards it. Any earlier
// pending action is discarded.
func (s *Service) Propose(ctx context.Context, item catalog.Item, prompt string) PendingAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	dialogID := s.dialog.Open(dialog.Request{
		Variant:        enums.DialogVariantInfo,
		Title:          addToCartTitle,
		Message:        prompt,
		PrimaryLabel:   addToCartPrimaryLabel,
		SecondaryLabel: addToCartSecondaryLabel,
	})
	action := PendingAction{
		ID:       uuid.New(),
		Kind:     enums.PendingActionAddToCart,
		DialogID: dialogID,
		Item:     item,
	}
	if s.pending != nil {
		s.logg.Debug(s.logg.WithActionID(ctx, s.pending.ID.String()), "pending action replaced")
	}
	s.pending = &action

	ctx = s.logg.WithActionID(s.logg.WithItemID(ctx, item.ID), action.ID.String())
	s.logg.Info(ctx, "add to cart proposed")
	return action
}

// AddToCart is the user asking to add a catalog item. The cart is only touched once the
// dialog is affirmed.
func (s *Service) AddToCart(ctx context.Context, itemID int) (PendingAction, error) {
	item, ok := s.catalog.Lookup(itemID)
	if !ok {
		return PendingAction{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %d not found", itemID))
	}
	return s.Propose(ctx, item, addToCartPrompt(item.Title)), nil
}

// Primary handles the affirmative dialog button. A held action bound to the open dialog
// wins over the generic confirmation.
func (s *Service) Primary(ctx context.Context) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.dialog.State()
	if s.pending != nil {
		action := *s.pending
		s.pending = nil
		if state.IsOpen && action.DialogID == state.ID {
			s.execute(ctx, action)
			return OutcomeExecuted
		}
		s.logg.Warn(s.logg.WithActionID(ctx, action.ID.String()), "discarding pending action bound to a closed dialog")
	}

	if !state.IsOpen || state.IsBusy || !dialog.Buttons(state).Primary.Visible {
		return OutcomeIgnored
	}

	s.dialog.SetBusy(true)
	s.confirmTimer = s.clock.AfterFunc(s.confirmDelay, s.finishGenericConfirm)
	s.logg.Info(s.logg.WithField(ctx, "dialog_id", state.ID.String()), "generic confirmation started")
	return OutcomeConfirming
}

// Secondary handles the dismissive dialog button. It is disabled while the dialog is busy.
func (s *Service) Secondary(ctx context.Context) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.dialog.State()
	if !state.IsOpen || state.IsBusy {
		return OutcomeIgnored
	}
	s.dialog.Close()
	if s.pending != nil {
		s.logg.Info(s.logg.WithActionID(ctx, s.pending.ID.String()), "pending action discarded")
		s.pending = nil
	}
	s.metrics.IncDecision(metrics.DecisionDismissed)
	return OutcomeDismissed
}

// RemoveFromCart drops every entry for the item right away and returns how many went.
func (s *Service) RemoveFromCart(ctx context.Context, itemID int) int {
	removed := s.cart.Remove(itemID)
	s.metrics.AddCartMutations(metrics.CartOpRemove, removed)
	s.logg.Info(s.logg.WithFields(s.logg.WithItemID(ctx, itemID), map[string]any{"removed": removed}), "cart entries removed")
	return removed
}

// OpenDialog shows a generic confirmation. Any held action loses its dialog and is discarded.
func (s *Service) OpenDialog(ctx context.Context, req dialog.Request) (uuid.UUID, error) {
	if !req.Variant.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid dialog variant %q", req.Variant))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.logg.Info(s.logg.WithActionID(ctx, s.pending.ID.String()), "pending action discarded")
		s.pending = nil
	}
	id := s.dialog.Open(req)
	s.logg.Info(s.logg.WithField(ctx, "dialog_id", id.String()), "dialog opened")
	return id, nil
}

func (s *Service) DismissNotification(ctx context.Context) {
	s.notifications.Dismiss()
}

// Close tears the session down: it hides the notification, closes the dialog and drops any
// held action.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmTimer != nil {
		s.confirmTimer.Stop()
		s.confirmTimer = nil
	}
	s.pending = nil
	s.dialog.Close()
	s.notifications.Hide()
}

// execute runs a held action. Callers hold s.mu.
func (s *Service) execute(ctx context.Context, action PendingAction) {
	ctx = s.logg.WithActionID(s.logg.WithItemID(ctx, action.Item.ID), action.ID.String())
	switch action.Kind {
	case enums.PendingActionAddToCart:
		s.cart.Add(action.Item)
		s.metrics.AddCartMutations(metrics.CartOpAdd, 1)
		s.notifications.Show(addedToCartMessage(action.Item.Title), enums.NotificationVariantSuccess)
	default:
		panic(fmt.Sprintf("unhandled pending action kind: %q", string(action.Kind)))
	}
	s.dialog.CloseIf(action.DialogID)
	s.metrics.IncDecision(metrics.DecisionConfirmed)
	s.logg.Info(ctx, "pending action executed")
}

// finishGenericConfirm ends the busy period. It closes whichever dialog is open at that point.
func (s *Service) finishGenericConfirm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmTimer == nil {
		// Close won the race against a timer that had already fired.
		return
	}
	s.confirmTimer = nil
	s.notifications.Show(genericConfirmMessage, enums.NotificationVariantSuccess)
	s.dialog.Close()
	s.pending = nil
	s.metrics.IncDecision(metrics.DecisionGenericConfirmed)
	s.logg.Info(context.Background(), "generic confirmation finished")
}
