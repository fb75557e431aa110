package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/angelmondragon/shopfront/internal/cart"
	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/dialog"
	"github.com/angelmondragon/shopfront/internal/storefront"
	"github.com/angelmondragon/shopfront/pkg/enums"
)

const (
	loadingText      = "Loading..."
	emptyCatalogText = "No products available"
	emptyCartText    = "Cart is empty"
	footerText       = "↑/↓ move • tab switch • enter/a add • d remove • y confirm • n/esc cancel • t dismiss • r refetch • q quit"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Faint(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("62"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedPane   = paneStyle.BorderForeground(lipgloss.Color("62"))
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1)

	buttonColors = map[string]lipgloss.Color{
		dialog.ColorPrimary:   lipgloss.Color("62"),
		dialog.ColorDanger:    lipgloss.Color("160"),
		dialog.ColorSecondary: lipgloss.Color("240"),
	}
	glyphColors = map[string]lipgloss.Color{
		"green": lipgloss.Color("34"),
		"blue":  lipgloss.Color("33"),
		"red":   lipgloss.Color("196"),
	}
)

func (m Model) View() string {
	catalogPane := paneStyle
	cartPane := paneStyle
	if m.focus == paneCatalog {
		catalogPane = focusedPane
	} else {
		cartPane = focusedPane
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		catalogPane.Render(renderCatalog(m.snap.Catalog, m.catalogCursor, m.focus == paneCatalog)),
		" ",
		cartPane.Render(renderCart(m.snap.Cart, m.cartCursor, m.focus == paneCart)),
	)

	sections := []string{titleStyle.Render("Shopfront"), body}
	if m.snap.Dialog.IsOpen {
		sections = append(sections, renderDialog(m.snap.Dialog))
	}
	if toast := renderNotification(m.snap.Notification); toast != "" {
		sections = append(sections, toast)
	}
	if m.lastErr != "" {
		sections = append(sections, errorStyle.Render(m.lastErr))
	}
	sections = append(sections, faintStyle.Render(footerText))
	return strings.Join(sections, "\n\n")
}

func renderCatalog(state catalog.FetchState, cursor int, focused bool) string {
	lines := []string{titleStyle.Render("Products")}
	switch state.Status {
	case enums.FetchStatusIdle, enums.FetchStatusLoading:
		lines = append(lines, loadingText)
	case enums.FetchStatusFailed:
		lines = append(lines, errorStyle.Render("Error: "+state.Reason))
	case enums.FetchStatusSuccess:
		if len(state.Items) == 0 {
			lines = append(lines, emptyCatalogText)
			break
		}
		for i, item := range state.Items {
			lines = append(lines, renderRow(itemLine(item), focused && i == cursor))
		}
	}
	return strings.Join(lines, "\n")
}

func renderCart(view storefront.CartView, cursor int, focused bool) string {
	lines := []string{titleStyle.Render("Cart")}
	if len(view.Entries) == 0 {
		lines = append(lines, emptyCartText)
		return strings.Join(lines, "\n")
	}
	for i, entry := range view.Entries {
		lines = append(lines, renderRow(entryLine(entry), focused && i == cursor))
	}
	lines = append(lines, faintStyle.Render("Total: $"+view.Total.StringFixed(2)))
	return strings.Join(lines, "\n")
}

func renderDialog(view storefront.DialogView) string {
	header := view.Title
	if view.Icon != nil {
		header = lipgloss.NewStyle().Foreground(glyphColors[view.Icon.Color]).Render(view.Icon.Symbol) + " " + header
	}

	var buttons []string
	if view.Buttons.Primary.Visible {
		label := view.Buttons.Primary.Label
		if view.Buttons.Primary.Loading {
			label += "..."
		}
		buttons = append(buttons, renderButton("[y] "+label, view.Buttons.Primary))
	}
	buttons = append(buttons, renderButton("[n] "+view.Buttons.Secondary.Label, view.Buttons.Secondary))

	content := strings.Join([]string{
		titleStyle.Render(header),
		view.Message,
		strings.Join(buttons, " "),
	}, "\n\n")
	return dialogStyle.Render(content)
}

func renderButton(label string, button dialog.Button) string {
	style := buttonStyle.Background(buttonColors[button.Color])
	if button.Disabled {
		style = style.Faint(true)
	}
	return style.Render(label)
}

func renderNotification(view storefront.NotificationView) string {
	if !view.IsVisible {
		return ""
	}
	text := view.Message
	if view.Icon != nil {
		text = lipgloss.NewStyle().Foreground(glyphColors[view.Icon.Color]).Render(view.Icon.Symbol) + " " + text
	}
	return text + faintStyle.Render("  (t to dismiss)")
}

func renderRow(text string, selected bool) string {
	if selected {
		return selectedStyle.Render("> " + text)
	}
	return "  " + text
}

func itemLine(item catalog.Item) string {
	return fmt.Sprintf("%s - $%s", item.Title, item.Price.StringFixed(2))
}

func entryLine(entry cart.Entry) string {
	return itemLine(entry.Item)
}
