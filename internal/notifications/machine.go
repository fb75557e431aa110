package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/facebookgo/clock"

	"github.com/angelmondragon/shopfront/pkg/enums"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/metrics"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3 * time.Second

// Notification is the single toast slot.
type Notification struct {
	Message   string                    `json:"message"`
	Variant   enums.NotificationVariant `json:"variant"`
	IsVisible bool                      `json:"isVisible"`
}

// MachineParams wires the notification machine. Zero values fall back to the real clock,
// DefaultDuration and a discarding logger.
type MachineParams struct {
	Clock    clock.Clock
	Duration time.Duration
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
}

// Machine owns the notification slot and its expiry timer. Hidden → Visible → Hidden.
type Machine struct {
	clock    clock.Clock
	duration time.Duration
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics

	mu         sync.Mutex
	state      Notification
	timer      *clock.Timer
	generation uint64
}

func NewMachine(params MachineParams) *Machine {
	clk := params.Clock
	if clk == nil {
		clk = clock.New()
	}
	duration := params.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Machine{
		clock:    clk,
		duration: duration,
		logg:     logg,
		metrics:  params.Metrics,
	}
}

// Show makes the message visible and restarts its lifetime. A pending expiry from an earlier
// message is cancelled.
func (m *Machine) Show(message string, variant enums.NotificationVariant) {
	m.mu.Lock()
	m.stopTimerLocked()
	m.generation++
	gen := m.generation
	m.state = Notification{Message: message, Variant: variant, IsVisible: true}
	m.timer = m.clock.AfterFunc(m.duration, func() { m.expire(gen) })
	m.mu.Unlock()

	m.metrics.IncNotification(variant.String())
	ctx := m.logg.WithField(context.Background(), "variant", variant.String())
	m.logg.Debug(ctx, "notification shown")
}

// Hide clears the notification and cancels its expiry. Hiding a hidden notification is a no-op.
func (m *Machine) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hideLocked()
}

// Dismiss hides the notification on user request ahead of its expiry.
func (m *Machine) Dismiss() {
	m.mu.Lock()
	wasVisible := m.state.IsVisible
	m.hideLocked()
	m.mu.Unlock()

	if wasVisible {
		m.logg.Debug(context.Background(), "notification dismissed")
	}
}

func (m *Machine) State() Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Duration reports the configured lifetime.
func (m *Machine) Duration() time.Duration {
	return m.duration
}

func (m *Machine) expire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return
	}
	m.timer = nil
	m.state.IsVisible = false
}

func (m *Machine) hideLocked() {
	m.stopTimerLocked()
	m.generation++
	m.state.IsVisible = false
}

func (m *Machine) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Glyph is the icon drawn next to a notification.
type Glyph struct {
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// Icon maps a variant to its glyph; unknown variants render without one.
func Icon(variant enums.NotificationVariant) (Glyph, bool) {
	switch variant {
	case enums.NotificationVariantSuccess:
		return Glyph{Symbol: "✓", Color: "green"}, true
	case enums.NotificationVariantError:
		return Glyph{Symbol: "!", Color: "red"}, true
	case enums.NotificationVariantInfo:
		return Glyph{Symbol: "i", Color: "blue"}, true
	}
	return Glyph{}, false
}
