package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/api/validators"
	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/dialog"
	"github.com/angelmondragon/shopfront/internal/storefront"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

// Storefront is the intent surface the handlers drive.
type Storefront interface {
	Snapshot() storefront.Snapshot
	FetchCatalog(ctx context.Context) catalog.FetchState
	AddToCart(ctx context.Context, itemID int) (storefront.PendingAction, error)
	RemoveFromCart(ctx context.Context, itemID int) int
	OpenDialog(ctx context.Context, req dialog.Request) (uuid.UUID, error)
	Primary(ctx context.Context) storefront.Outcome
	Secondary(ctx context.Context) storefront.Outcome
	DismissNotification(ctx context.Context)
}

type decisionResponse struct {
	Outcome storefront.Outcome  `json:"outcome"`
	State   storefront.Snapshot `json:"state"`
}

type addToCartResponse struct {
	PendingAction storefront.PendingAction `json:"pendingAction"`
	State         storefront.Snapshot      `json:"state"`
}

type removeFromCartResponse struct {
	Removed int                 `json:"removed"`
	State   storefront.Snapshot `json:"state"`
}

type openDialogResponse struct {
	DialogID uuid.UUID           `json:"dialogId"`
	State    storefront.Snapshot `json:"state"`
}

// StorefrontState returns the current read model.
func StorefrontState(svc Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Snapshot())
	}
}

// FetchCatalog starts a catalog fetch and returns right away; progress shows up in the state.
func FetchCatalog(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithoutCancel(r.Context())
		go func() {
			state := svc.FetchCatalog(ctx)
			logg.Debug(logg.WithField(ctx, "status", state.Status.String()), "background catalog fetch settled")
		}()
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "started"})
	}
}

// AddToCart opens the confirmation dialog for a catalog item.
func AddToCart(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParsePathID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		action, err := svc.AddToCart(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, addToCartResponse{PendingAction: action, State: svc.Snapshot()})
	}
}

func RemoveFromCart(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParsePathID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		removed := svc.RemoveFromCart(r.Context(), itemID)
		responses.WriteSuccess(w, removeFromCartResponse{Removed: removed, State: svc.Snapshot()})
	}
}

// OpenDialog shows a generic confirmation dialog.
func OpenDialog(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dialog.Request
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		req.Message = strings.TrimSpace(req.Message)
		if req.Title == "" || req.Message == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "title and message must not be blank"))
			return
		}

		id, err := svc.OpenDialog(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, openDialogResponse{DialogID: id, State: svc.Snapshot()})
	}
}

func DialogPrimary(svc Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := svc.Primary(r.Context())
		responses.WriteSuccess(w, decisionResponse{Outcome: outcome, State: svc.Snapshot()})
	}
}

func DialogSecondary(svc Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := svc.Secondary(r.Context())
		responses.WriteSuccess(w, decisionResponse{Outcome: outcome, State: svc.Snapshot()})
	}
}

func DismissNotification(svc Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.DismissNotification(r.Context())
		responses.WriteSuccess(w, svc.Snapshot())
	}
}
