package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/storefront"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

// refreshInterval is how often the view re-reads state; timers change it off the UI loop.
const refreshInterval = 200 * time.Millisecond

// Storefront is the intent surface the terminal view drives.
type Storefront interface {
	Snapshot() storefront.Snapshot
	FetchCatalog(ctx context.Context) catalog.FetchState
	AddToCart(ctx context.Context, itemID int) (storefront.PendingAction, error)
	RemoveFromCart(ctx context.Context, itemID int) int
	Primary(ctx context.Context) storefront.Outcome
	Secondary(ctx context.Context) storefront.Outcome
	DismissNotification(ctx context.Context)
}

type pane int

const (
	paneCatalog pane = iota
	paneCart
)

type refreshTickMsg struct{}

type fetchDoneMsg struct {
	state catalog.FetchState
}

// Model is the Bubble Tea model of the storefront.
type Model struct {
	ctx  context.Context
	svc  Storefront
	logg *logger.Logger

	snap          storefront.Snapshot
	focus         pane
	catalogCursor int
	cartCursor    int
	lastErr       string
	width         int
}

func New(ctx context.Context, svc Storefront, logg *logger.Logger) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return Model{ctx: ctx, svc: svc, logg: logg, snap: svc.Snapshot()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tickRefresh())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case refreshTickMsg:
		m.refresh()
		return m, tickRefresh()
	case fetchDoneMsg:
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.snap.Dialog.IsOpen {
		switch key {
		case "y", "enter":
			m.svc.Primary(m.ctx)
		case "n", "esc":
			m.svc.Secondary(m.ctx)
		case "t":
			m.svc.DismissNotification(m.ctx)
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	switch key {
	case "tab":
		if m.focus == paneCatalog {
			m.focus = paneCart
		} else {
			m.focus = paneCatalog
		}
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter", "a":
		m.addSelected()
	case "d":
		m.removeSelected()
	case "t":
		m.svc.DismissNotification(m.ctx)
	case "r":
		cmd = m.fetch()
	}
	m.refresh()
	return m, cmd
}

func (m *Model) addSelected() {
	if m.focus != paneCatalog || !m.snap.Catalog.IsSuccess() || len(m.snap.Catalog.Items) == 0 {
		return
	}
	item := m.snap.Catalog.Items[m.catalogCursor]
	if _, err := m.svc.AddToCart(m.ctx, item.ID); err != nil {
		m.lastErr = err.Error()
		m.logg.Warn(m.logg.WithItemID(m.ctx, item.ID), "add to cart rejected")
		return
	}
	m.lastErr = ""
}

func (m *Model) removeSelected() {
	if m.focus != paneCart || len(m.snap.Cart.Entries) == 0 {
		return
	}
	m.svc.RemoveFromCart(m.ctx, m.snap.Cart.Entries[m.cartCursor].Item.ID)
}

func (m *Model) moveCursor(delta int) {
	if m.focus == paneCatalog {
		m.catalogCursor = clamp(m.catalogCursor+delta, len(m.snap.Catalog.Items))
		return
	}
	m.cartCursor = clamp(m.cartCursor+delta, len(m.snap.Cart.Entries))
}

func (m *Model) refresh() {
	m.snap = m.svc.Snapshot()
	m.catalogCursor = clamp(m.catalogCursor, len(m.snap.Catalog.Items))
	m.cartCursor = clamp(m.cartCursor, len(m.snap.Cart.Entries))
}

func (m Model) fetch() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return fetchDoneMsg{state: svc.FetchCatalog(ctx)}
	}
}

func tickRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
