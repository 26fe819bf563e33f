package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind enumerates every button the bot can render. Callback
// dispatch switches over this enum, so adding a kind without a case is
// caught by the default branch in tests rather than by silent regex
// misses.
type ActionKind int

const (
	ActionMainMenu ActionKind = iota
	ActionMenu
	ActionCart
	ActionOrders
	ActionAbout
	ActionSettings
	ActionToggleNotifications
	ActionCategory
	ActionProduct
	ActionSize
	ActionIncreaseQty
	ActionDecreaseQty
	ActionQtyDisplay
	ActionExtra
	ActionAddToCart
	ActionClearCart
	ActionCheckout
	ActionSavedAddresses
	ActionUseAddress
	ActionSendLocation
	ActionWriteAddress
	ActionConfirmAddress
	ActionSaveAddress
	ActionSkipInfo
	ActionPayment
)

// Action is a parsed callback payload: a kind plus its argument, if
// the kind carries one (ID for record references, Value for labels).
type Action struct {
	Kind  ActionKind
	ID    uint
	Value string
}

var simpleActions = map[string]ActionKind{
	"main_menu":            ActionMainMenu,
	"menu":                 ActionMenu,
	"cart":                 ActionCart,
	"orders":               ActionOrders,
	"about":                ActionAbout,
	"settings":             ActionSettings,
	"toggle_notifications": ActionToggleNotifications,
	"increase_qty":         ActionIncreaseQty,
	"decrease_qty":         ActionDecreaseQty,
	"qty_display":          ActionQtyDisplay,
	"add_to_cart":          ActionAddToCart,
	"clear_cart":           ActionClearCart,
	"checkout":             ActionCheckout,
	"saved_addresses":      ActionSavedAddresses,
	"send_location":        ActionSendLocation,
	"write_address":        ActionWriteAddress,
	"confirm_address":      ActionConfirmAddress,
	"save_address":         ActionSaveAddress,
	"skip_additional_info": ActionSkipInfo,
}

var simpleData = func() map[ActionKind]string {
	m := make(map[ActionKind]string, len(simpleActions))
	for data, kind := range simpleActions {
		m[kind] = data
	}
	return m
}()

// ParseAction decodes a callback data string into an Action.
func ParseAction(data string) (Action, error) {
	if kind, ok := simpleActions[data]; ok {
		return Action{Kind: kind}, nil
	}

	prefix, arg, found := strings.Cut(data, "_")
	if !found {
		return Action{}, fmt.Errorf("unknown action %q", data)
	}

	switch prefix {
	case "category", "product", "address":
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return Action{}, fmt.Errorf("action %q: bad id: %w", data, err)
		}
		kind := map[string]ActionKind{
			"category": ActionCategory,
			"product":  ActionProduct,
			"address":  ActionUseAddress,
		}[prefix]
		return Action{Kind: kind, ID: uint(id)}, nil
	case "size":
		return Action{Kind: ActionSize, Value: arg}, nil
	case "extra":
		return Action{Kind: ActionExtra, Value: arg}, nil
	case "payment":
		return Action{Kind: ActionPayment, Value: arg}, nil
	}

	return Action{}, fmt.Errorf("unknown action %q", data)
}

// Data encodes the action back into its callback payload.
func (a Action) Data() string {
	if data, ok := simpleData[a.Kind]; ok {
		return data
	}

	switch a.Kind {
	case ActionCategory:
		return fmt.Sprintf("category_%d", a.ID)
	case ActionProduct:
		return fmt.Sprintf("product_%d", a.ID)
	case ActionUseAddress:
		return fmt.Sprintf("address_%d", a.ID)
	case ActionSize:
		return "size_" + a.Value
	case ActionExtra:
		return "extra_" + a.Value
	case ActionPayment:
		return "payment_" + a.Value
	default:
		return ""
	}
}
