package enums

import "fmt"

// DialogVariant selects the icon and button styling of a confirmation dialog.
type DialogVariant string

const (
	DialogVariantSuccess DialogVariant = "success"
	DialogVariantInfo    DialogVariant = "info"
	DialogVariantDanger  DialogVariant = "danger"
)

var validDialogVariants = []DialogVariant{
	DialogVariantSuccess,
	DialogVariantInfo,
	DialogVariantDanger,
}

// String implements fmt.Stringer.
func (d DialogVariant) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DialogVariant.
func (d DialogVariant) IsValid() bool {
	for _, candidate := range validDialogVariants {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDialogVariant converts raw input into a DialogVariant.
func ParseDialogVariant(value string) (DialogVariant, error) {
	for _, candidate := range validDialogVariants {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dialog variant %q", value)
}
