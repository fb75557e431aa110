package enums

import "fmt"

// FetchStatus is the discriminator of the catalog fetch lifecycle.
type FetchStatus string

const (
	FetchStatusIdle    FetchStatus = "idle"
	FetchStatusLoading FetchStatus = "loading"
	FetchStatusSuccess FetchStatus = "success"
	FetchStatusFailed  FetchStatus = "failed"
)

var validFetchStatuses = []FetchStatus{
	FetchStatusIdle,
	FetchStatusLoading,
	FetchStatusSuccess,
	FetchStatusFailed,
}

// String implements fmt.Stringer.
func (f FetchStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FetchStatus.
func (f FetchStatus) IsValid() bool {
	for _, candidate := range validFetchStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a fetch attempt has finished.
func (f FetchStatus) IsTerminal() bool {
	return f == FetchStatusSuccess || f == FetchStatusFailed
}

// ParseFetchStatus converts raw input into a FetchStatus.
func ParseFetchStatus(value string) (FetchStatus, error) {
	for _, candidate := range validFetchStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fetch status %q", value)
}
