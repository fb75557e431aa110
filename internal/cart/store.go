package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/internal/catalog"
)

// Entry is one staged item. Quantity is implicitly one per entry.
type Entry struct {
	Item catalog.Item `json:"item"`
}

// Store holds the staged cart entries in insertion order.
type Store struct {
	mu      sync.Mutex
	entries []Entry
}

func NewStore() *Store {
	return &Store{}
}

// Add appends an entry. Duplicate items coexist as separate entries.
func (s *Store) Add(item catalog.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Item: item})
}

// Remove deletes every entry for the item id and reports how many were dropped.
func (s *Store) Remove(itemID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := 0
	for _, entry := range s.entries {
		if entry.Item.ID == itemID {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = Entry{}
	}
	s.entries = kept
	return removed
}

// Entries returns a copy of the entries for display.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Total sums the entry prices.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, entry := range s.entries {
		total = total.Add(entry.Item.Price)
	}
	return total
}

// Clear drops every entry and returns how many were held.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	s.entries = nil
	return n
}
