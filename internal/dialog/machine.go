package dialog

import (
	"sync"

	"github.com/google/uuid"
)

// Machine owns the dialog slot. Closed → Open(idle) → Open(busy) → Closed.
type Machine struct {
	mu    sync.Mutex
	state State
}

func NewMachine() *Machine {
	return &Machine{}
}

// Open shows a request, replacing whatever was open, and returns its fresh id.
func (m *Machine) Open(req Request) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{
		ID:      uuid.New(),
		Request: req,
		IsOpen:  true,
	}
	return m.state.ID
}

// Close hides the dialog and clears busy. The request fields are kept.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.IsOpen = false
	m.state.IsBusy = false
}

// CloseIf closes the dialog only while it still shows the request with the given id.
func (m *Machine) CloseIf(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.IsOpen || m.state.ID != id {
		return false
	}
	m.state.IsOpen = false
	m.state.IsBusy = false
	return true
}

// SetBusy toggles the busy flag of an open dialog. It never opens or closes the dialog.
func (m *Machine) SetBusy(busy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if busy && !m.state.IsOpen {
		return
	}
	m.state.IsBusy = busy
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
