package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/dialog"
	"github.com/angelmondragon/shopfront/internal/storefront"
	"github.com/angelmondragon/shopfront/pkg/config"
	"github.com/angelmondragon/shopfront/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/types"
)

type stubStorefront struct {
	mu           sync.Mutex
	snapshot     storefront.Snapshot
	fetchCalls   int
	fetched      chan struct{}
	addFn        func(ctx context.Context, itemID int) (storefront.PendingAction, error)
	removed      []int
	openedReq    *dialog.Request
	primary      storefront.Outcome
	secondary    storefront.Outcome
	dismissCalls int
}

func (s *stubStorefront) Snapshot() storefront.Snapshot { return s.snapshot }

func (s *stubStorefront) FetchCatalog(ctx context.Context) catalog.FetchState {
	s.mu.Lock()
	s.fetchCalls++
	s.mu.Unlock()
	if s.fetched != nil {
		close(s.fetched)
	}
	return catalog.Succeeded(nil)
}

func (s *stubStorefront) AddToCart(ctx context.Context, itemID int) (storefront.PendingAction, error) {
	if s.addFn != nil {
		return s.addFn(ctx, itemID)
	}
	return storefront.PendingAction{}, nil
}

func (s *stubStorefront) RemoveFromCart(ctx context.Context, itemID int) int {
	s.removed = append(s.removed, itemID)
	return 1
}

func (s *stubStorefront) OpenDialog(ctx context.Context, req dialog.Request) (uuid.UUID, error) {
	s.openedReq = &req
	return uuid.New(), nil
}

func (s *stubStorefront) Primary(ctx context.Context) storefront.Outcome   { return s.primary }
func (s *stubStorefront) Secondary(ctx context.Context) storefront.Outcome { return s.secondary }
func (s *stubStorefront) DismissNotification(ctx context.Context)          { s.dismissCalls++ }

func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error
}

func TestAddToCartPassesItemID(t *testing.T) {
	var got int
	svc := &stubStorefront{addFn: func(ctx context.Context, itemID int) (storefront.PendingAction, error) {
		got = itemID
		return storefront.PendingAction{ID: uuid.New(), Kind: enums.PendingActionAddToCart}, nil
	}}

	w := serve(t, http.MethodPost, "/api/cart/items/{itemID}", "/api/cart/items/7", "", AddToCart(svc, logger.Nop()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, got)
	assert.Contains(t, w.Body.String(), `"kind":"add_to_cart"`)
}

func TestAddToCartNotFound(t *testing.T) {
	svc := &stubStorefront{addFn: func(ctx context.Context, itemID int) (storefront.PendingAction, error) {
		return storefront.PendingAction{}, pkgerrors.New(pkgerrors.CodeNotFound, "item 9 not found")
	}}

	w := serve(t, http.MethodPost, "/api/cart/items/{itemID}", "/api/cart/items/9", "", AddToCart(svc, logger.Nop()))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "item 9 not found", decodeError(t, w).Message)
}

func TestAddToCartRejectsBadID(t *testing.T) {
	w := serve(t, http.MethodPost, "/api/cart/items/{itemID}", "/api/cart/items/abc", "", AddToCart(&stubStorefront{}, logger.Nop()))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(pkgerrors.CodeValidation), decodeError(t, w).Code)
}

func TestRemoveFromCart(t *testing.T) {
	svc := &stubStorefront{}
	w := serve(t, http.MethodDelete, "/api/cart/items/{itemID}", "/api/cart/items/3", "", RemoveFromCart(svc, logger.Nop()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{3}, svc.removed)
	assert.Contains(t, w.Body.String(), `"removed":1`)
}

func TestOpenDialogValidatesBody(t *testing.T) {
	svc := &stubStorefront{}
	w := serve(t, http.MethodPost, "/api/dialog", "/api/dialog", `{"variant":"warning","title":"x","message":"y","secondaryLabel":"z"}`, OpenDialog(svc, logger.Nop()))

	require.Equal(t, http.StatusBadRequest, w.Code)
	apiErr := decodeError(t, w)
	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "variant")
	assert.Nil(t, svc.openedReq)
}

func TestOpenDialogRejectsBlankTitle(t *testing.T) {
	svc := &stubStorefront{}
	w := serve(t, http.MethodPost, "/api/dialog", "/api/dialog", `{"variant":"info","title":"  ","message":"y","secondaryLabel":"z"}`, OpenDialog(svc, logger.Nop()))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.openedReq)
}

func TestOpenDialogSuccess(t *testing.T) {
	svc := &stubStorefront{}
	w := serve(t, http.MethodPost, "/api/dialog", "/api/dialog", `{"variant":"danger","title":"Clear cart","message":"Remove everything?","primaryLabel":"Delete","secondaryLabel":"Keep"}`, OpenDialog(svc, logger.Nop()))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.openedReq)
	assert.Equal(t, enums.DialogVariantDanger, svc.openedReq.Variant)
	assert.Equal(t, "Delete", svc.openedReq.PrimaryLabel)
}

func TestDialogDecisions(t *testing.T) {
	svc := &stubStorefront{primary: storefront.OutcomeExecuted, secondary: storefront.OutcomeIgnored}

	w := serve(t, http.MethodPost, "/api/dialog/primary", "/api/dialog/primary", "", DialogPrimary(svc))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"executed"`)

	w = serve(t, http.MethodPost, "/api/dialog/secondary", "/api/dialog/secondary", "", DialogSecondary(svc))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"ignored"`)
}

func TestDismissNotification(t *testing.T) {
	svc := &stubStorefront{}
	w := serve(t, http.MethodPost, "/api/notification/dismiss", "/api/notification/dismiss", "", DismissNotification(svc))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.dismissCalls)
}

func TestFetchCatalogRunsInBackground(t *testing.T) {
	svc := &stubStorefront{fetched: make(chan struct{})}
	w := serve(t, http.MethodPost, "/api/catalog/fetch", "/api/catalog/fetch", "", FetchCatalog(svc, logger.Nop()))

	require.Equal(t, http.StatusAccepted, w.Code)
	select {
	case <-svc.fetched:
	case <-time.After(time.Second):
		t.Fatal("expected background fetch to run")
	}
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	svc := &stubStorefront{snapshot: storefront.Snapshot{Catalog: catalog.Loading()}}
	w := serve(t, http.MethodGet, "/health/ready", "/health/ready", "", HealthReady(cfg, logger.Nop(), svc))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	svc.snapshot = storefront.Snapshot{Catalog: catalog.Succeeded(nil)}
	w = serve(t, http.MethodGet, "/health/ready", "/health/ready", "", HealthReady(cfg, logger.Nop(), svc))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dev", w.Header().Get(envHeader))
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "prod"}}
	w := serve(t, http.MethodGet, "/health/live", "/health/live", "", HealthLive(cfg))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "prod", w.Header().Get(envHeader))
}
