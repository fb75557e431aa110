package enums

import "fmt"

// NotificationVariant tags a toast message with its severity.
type NotificationVariant string

const (
	NotificationVariantSuccess NotificationVariant = "success"
	NotificationVariantError   NotificationVariant = "error"
	NotificationVariantInfo    NotificationVariant = "info"
)

var validNotificationVariants = []NotificationVariant{
	NotificationVariantSuccess,
	NotificationVariantError,
	NotificationVariantInfo,
}

// String implements fmt.Stringer.
func (n NotificationVariant) String() string {
	return string(n)
}

// IsValid checks whether the given variant matches the canonical enum.
func (n NotificationVariant) IsValid() bool {
	for _, candidate := range validNotificationVariants {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationVariant converts raw strings into NotificationVariant.
func ParseNotificationVariant(value string) (NotificationVariant, error) {
	for _, candidate := range validNotificationVariants {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification variant %q", value)
}
