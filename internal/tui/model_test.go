package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/facebookgo/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/storefront"
	"github.com/angelmondragon/shopfront/pkg/storeapi"
)

type listSource struct {
	products []storeapi.Product
	err      error
}

func (s listSource) ListProducts(ctx context.Context) ([]storeapi.Product, error) {
	return s.products, s.err
}

func newService(t *testing.T, source catalog.Source) *storefront.Service {
	t.Helper()
	machine, err := catalog.NewMachine(catalog.MachineParams{Source: source})
	require.NoError(t, err)
	svc, err := storefront.NewService(storefront.ServiceParams{Catalog: machine, Clock: clock.NewMock()})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func products() []storeapi.Product {
	return []storeapi.Product{
		{ID: 1, Title: "Shirt", Price: decimal.RequireFromString("19.99"), Image: "x"},
		{ID: 2, Title: "Hat", Price: decimal.NewFromInt(5)},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func loaded(t *testing.T, source catalog.Source) (Model, *storefront.Service) {
	t.Helper()
	svc := newService(t, source)
	m := New(context.Background(), svc, nil)
	msg := m.fetch()()
	return press(t, m, msg), svc
}

func TestViewShowsLoadingBeforeFetch(t *testing.T) {
	svc := newService(t, listSource{products: products()})
	m := New(context.Background(), svc, nil)
	assert.Contains(t, m.View(), "Loading...")
	assert.Contains(t, m.View(), "Cart is empty")
}

func TestViewListsProducts(t *testing.T) {
	m, _ := loaded(t, listSource{products: products()})
	view := m.View()
	assert.Contains(t, view, "Shirt - $19.99")
	assert.Contains(t, view, "Hat - $5.00")
}

func TestViewEmptyCatalog(t *testing.T) {
	m, _ := loaded(t, listSource{products: []storeapi.Product{}})
	assert.Contains(t, m.View(), "No products available")
}

func TestViewFetchError(t *testing.T) {
	m, _ := loaded(t, listSource{err: &storeapi.StatusError{StatusCode: 500}})
	assert.Contains(t, m.View(), "Error: Failed to fetch: 500")
}

func TestAddConfirmFlow(t *testing.T) {
	m, svc := loaded(t, listSource{products: products()})

	m = press(t, m, runes("a"))
	require.True(t, m.snap.Dialog.IsOpen)
	assert.Contains(t, m.View(), "Are you sure you want to add Shirt to your cart?")
	assert.Empty(t, svc.Snapshot().Cart.Entries)

	m = press(t, m, runes("y"))
	assert.False(t, m.snap.Dialog.IsOpen)
	require.Len(t, m.snap.Cart.Entries, 1)
	assert.Contains(t, m.View(), "Shirt has been added to your cart!")

	m = press(t, m, runes("t"))
	assert.False(t, m.snap.Notification.IsVisible)
}

func TestCancelLeavesCartEmpty(t *testing.T) {
	m, _ := loaded(t, listSource{products: products()})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.snap.Dialog.IsOpen)
	assert.Contains(t, m.snap.Dialog.Message, "Hat")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.snap.Dialog.IsOpen)
	assert.Empty(t, m.snap.Cart.Entries)
}

func TestRemoveFromCartPane(t *testing.T) {
	m, _ := loaded(t, listSource{products: products()})
	m = press(t, m, runes("a"))
	m = press(t, m, runes("y"))
	require.Len(t, m.snap.Cart.Entries, 1)

	m = press(t, m, runes("d"))
	assert.Len(t, m.snap.Cart.Entries, 1, "remove only applies to the cart pane")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("d"))
	assert.Empty(t, m.snap.Cart.Entries)
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _ := loaded(t, listSource{products: products()})
	for i := 0; i < 5; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 1, m.catalogCursor)
	for i := 0; i < 5; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.catalogCursor)
}

func TestRefetchKeyReturnsCommand(t *testing.T) {
	m, _ := loaded(t, listSource{products: products()})
	_, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	_, ok := cmd().(fetchDoneMsg)
	assert.True(t, ok)
}

func TestQuit(t *testing.T) {
	m, _ := loaded(t, listSource{products: products()})
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-1, 3))
	assert.Equal(t, 2, clamp(5, 3))
	assert.Equal(t, 0, clamp(1, 0))
}
