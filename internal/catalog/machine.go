package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/metrics"
	"github.com/angelmondragon/shopfront/pkg/storeapi"
)

// Source is the remote catalog collaborator.
type Source interface {
	ListProducts(ctx context.Context) ([]storeapi.Product, error)
}

// MachineParams wires the fetch machine.
type MachineParams struct {
	Source  Source
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Machine owns the catalog FetchState.
//
// Overlapping Fetch calls are not sequenced: each one writes Loading and then its own
// terminal state, so the attempt that finishes last wins.
type Machine struct {
	source  Source
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics

	mu    sync.Mutex
	state FetchState
}

func NewMachine(params MachineParams) (*Machine, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Machine{
		source:  params.Source,
		logg:    logg,
		metrics: params.Metrics,
		state:   Idle(),
	}, nil
}

// Fetch runs one request against the collaborator and returns the terminal state it wrote.
// Failures are captured in the state, never returned.
func (m *Machine) Fetch(ctx context.Context) FetchState {
	if ctx == nil {
		ctx = context.Background()
	}
	m.set(Loading())

	start := time.Now()
	products, err := m.source.ListProducts(ctx)
	var next FetchState
	if err == nil {
		var items []Item
		items, err = itemsFromProducts(products)
		if err == nil {
			next = Succeeded(items)
		}
	}
	duration := time.Since(start)
	ctx = m.logg.WithField(ctx, "duration_ms", duration.Milliseconds())

	if err != nil {
		next = Failed(FailureReason(err))
		m.metrics.ObserveFetch(metrics.FetchOutcomeFailure, duration)
		m.logg.Error(m.logg.WithField(ctx, "reason", next.Reason), "catalog fetch failed", err)
	} else {
		m.metrics.ObserveFetch(metrics.FetchOutcomeSuccess, duration)
		m.logg.Info(m.logg.WithField(ctx, "items", len(next.Items)), "catalog fetched")
	}

	m.set(next)
	return next.clone()
}

// State returns a copy of the current fetch state.
func (m *Machine) State() FetchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Lookup finds an item in the current successful listing.
func (m *Machine) Lookup(id int) (Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.IsSuccess() {
		return Item{}, false
	}
	for _, item := range m.state.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (m *Machine) set(state FetchState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// FailureReason derives the human-readable reason stored in a Failed state.
func FailureReason(err error) string {
	if err == nil {
		return UnknownErrorReason
	}
	var statusErr *storeapi.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	if root := pkgerrors.RootCause(err); root != nil {
		if msg := strings.TrimSpace(root.Error()); msg != "" {
			return msg
		}
	}
	return UnknownErrorReason
}
