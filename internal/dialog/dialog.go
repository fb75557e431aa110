package dialog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopfront/pkg/enums"
)

// Request describes what a confirmation dialog shows.
type Request struct {
	Variant        enums.DialogVariant `json:"variant" validate:"required,oneof=success info danger"`
	Title          string              `json:"title" validate:"required,max=120"`
	Message        string              `json:"message" validate:"required,max=500"`
	PrimaryLabel   string              `json:"primaryLabel,omitempty" validate:"omitempty,max=40"`
	SecondaryLabel string              `json:"secondaryLabel" validate:"required,max=40"`
}

// State is the single dialog slot. IsBusy implies IsOpen.
type State struct {
	ID uuid.UUID `json:"id"`
	Request
	IsOpen bool `json:"isOpen"`
	IsBusy bool `json:"isBusy"`
}

// Button colors used by the views.
const (
	ColorPrimary   = "primary"
	ColorDanger    = "danger"
	ColorSecondary = "secondary"
)

type Button struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Visible  bool   `json:"visible"`
	Disabled bool   `json:"disabled"`
	Loading  bool   `json:"loading"`
}

type ButtonSet struct {
	Primary   Button `json:"primary"`
	Secondary Button `json:"secondary"`
}

// Buttons applies the display rule to a dialog state. The primary button is hidden for success
// dialogs and when it has no label.
func Buttons(state State) ButtonSet {
	primaryColor := ColorPrimary
	if state.Variant == enums.DialogVariantDanger {
		primaryColor = ColorDanger
	}
	return ButtonSet{
		Primary: Button{
			Label:   state.PrimaryLabel,
			Color:   primaryColor,
			Visible: state.PrimaryLabel != "" && state.Variant != enums.DialogVariantSuccess,
			Loading: state.IsBusy,
		},
		Secondary: Button{
			Label:    state.SecondaryLabel,
			Color:    ColorSecondary,
			Visible:  true,
			Disabled: state.IsBusy,
		},
	}
}

// Glyph is the icon drawn next to a dialog.
type Glyph struct {
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// Icon maps a variant to its glyph. Unknown variants are a programming error and panic.
func Icon(variant enums.DialogVariant) Glyph {
	switch variant {
	case enums.DialogVariantDanger:
		return Glyph{Symbol: "!", Color: "red"}
	case enums.DialogVariantSuccess:
		return Glyph{Symbol: "✓", Color: "green"}
	case enums.DialogVariantInfo:
		return Glyph{Symbol: "i", Color: "blue"}
	}
	panic(fmt.Sprintf("unhandled dialog variant: %q", string(variant)))
}
