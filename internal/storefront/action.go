package storefront

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/pkg/enums"
)

// PendingAction is a mutation held back until the user affirms the dialog it is bound to.
type PendingAction struct {
	ID       uuid.UUID               `json:"id"`
	Kind     enums.PendingActionKind `json:"kind"`
	DialogID uuid.UUID               `json:"dialogId"`
	Item     catalog.Item            `json:"item"`
}

// Outcome reports what a dialog button press did.
type Outcome string

const (
	OutcomeExecuted   Outcome = "executed"
	OutcomeConfirming Outcome = "confirming"
	OutcomeDismissed  Outcome = "dismissed"
	OutcomeIgnored    Outcome = "ignored"
)

const (
	addToCartTitle          = "Add to Cart"
	addToCartPrimaryLabel   = "Yes, Add"
	addToCartSecondaryLabel = "Cancel"
	genericConfirmMessage   = "Action confirmed successfully!"
)

func addToCartPrompt(title string) string {
	return fmt.Sprintf("Are you sure you want to add %s to your cart?", title)
}

func addedToCartMessage(title string) string {
	return fmt.Sprintf("%s has been added to your cart!", title)
}
