package enums

import "fmt"

// PendingActionKind names the mutation a confirmation dialog is guarding.
type PendingActionKind string

const (
	PendingActionAddToCart PendingActionKind = "add_to_cart"
)

var validPendingActionKinds = []PendingActionKind{
	PendingActionAddToCart,
}

// String implements fmt.Stringer.
func (p PendingActionKind) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PendingActionKind.
func (p PendingActionKind) IsValid() bool {
	for _, candidate := range validPendingActionKinds {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePendingActionKind converts raw input into a PendingActionKind.
func ParsePendingActionKind(value string) (PendingActionKind, error) {
	for _, candidate := range validPendingActionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pending action kind %q", value)
}
