package bot

import (
	"context"
	"log"
	"strings"

	"github.com/example/oshxona/internal/config"
	"github.com/example/oshxona/internal/gateway"
	"github.com/example/oshxona/internal/session"
	"github.com/example/oshxona/internal/storage"
)

// Gateway is the outbound render contract the state machine depends
// on. The Telegram transport in internal/gateway satisfies it; tests
// use a fake.
type Gateway interface {
	SendText(chatID int64, text string, kb gateway.Keyboard) error
	EditText(chatID int64, messageID int, text string, kb gateway.Keyboard) error
	RequestContact(chatID int64, text, buttonLabel string) error
	Acknowledge(callbackID, notice string) error
}

// Scheduler defers the automatic pending → confirmed transition.
type Scheduler interface {
	ConfirmLater(orderID uint) error
}

// Bot drives the per-user ordering conversation.
type Bot struct {
	store     storage.Store
	sessions  session.Store
	gw        Gateway
	scheduler Scheduler

	restaurantName string
	deliveryPrice  int64
	estimatedTime  string
}

// New constructs the Bot with its collaborators injected.
func New(store storage.Store, sessions session.Store, gw Gateway, scheduler Scheduler, cfg *config.Config) *Bot {
	return &Bot{
		store:          store,
		sessions:       sessions,
		gw:             gw,
		scheduler:      scheduler,
		restaurantName: cfg.RestaurantName,
		deliveryPrice:  cfg.DeliveryPrice,
		estimatedTime:  cfg.EstimatedTime,
	}
}

// HandleEvent processes one inbound event to completion. The gateway
// delivers events sequentially, so handlers never interleave for the
// same session.
func (b *Bot) HandleEvent(ctx context.Context, e gateway.Event) {
	s := b.sessions.GetOrCreate(ctx, e.UserID)
	defer b.sessions.Save(ctx, s)

	switch e.Kind {
	case gateway.EventCommand:
		if e.Command == "start" {
			b.handleStart(e, s)
		}
	case gateway.EventContact:
		b.handleContact(e, s)
	case gateway.EventText:
		b.handleText(e, s)
	case gateway.EventLocation:
		b.handleLocation(e, s)
	case gateway.EventCallback:
		b.handleCallback(e, s)
	}
}

func (b *Bot) handleCallback(e gateway.Event, s *session.Session) {
	action, err := ParseAction(e.CallbackData)
	if err != nil {
		log.Printf("[Bot] %v", err)
		b.ack(e, msgGenericError)
		return
	}

	switch action.Kind {
	case ActionMainMenu:
		b.showMainMenu(e, s, true)
		b.ack(e, "")
	case ActionMenu:
		b.showCategories(e, s)
	case ActionCart:
		b.showCart(e, s)
	case ActionOrders:
		b.showOrders(e, s)
	case ActionAbout:
		b.showAbout(e)
	case ActionSettings:
		b.showSettings(e, s)
	case ActionToggleNotifications:
		b.toggleNotifications(e, s)
	case ActionCategory:
		b.showCategoryProducts(e, s, action.ID)
	case ActionProduct:
		b.showProduct(e, s, action.ID)
	case ActionSize:
		b.selectSize(e, s, action.Value)
	case ActionIncreaseQty:
		b.changeQuantity(e, s, +1)
	case ActionDecreaseQty:
		b.changeQuantity(e, s, -1)
	case ActionQtyDisplay:
		b.changeQuantity(e, s, 0)
	case ActionExtra:
		b.toggleExtra(e, s, action.Value)
	case ActionAddToCart:
		b.addToCart(e, s)
	case ActionClearCart:
		b.clearCart(e, s)
	case ActionCheckout:
		b.startCheckout(e, s)
	case ActionSavedAddresses:
		b.showSavedAddresses(e, s)
	case ActionUseAddress:
		b.useSavedAddress(e, s, action.ID)
	case ActionSendLocation:
		b.promptLocation(e, s)
	case ActionWriteAddress:
		b.promptAddressText(e, s)
	case ActionConfirmAddress:
		b.confirmAddress(e, s)
	case ActionSaveAddress:
		b.saveAddress(e, s)
	case ActionSkipInfo:
		b.askPaymentMethod(e, s)
	case ActionPayment:
		b.placeOrder(e, s, action.Value)
	default:
		log.Printf("[Bot] unhandled action kind %d", action.Kind)
		b.ack(e, msgGenericError)
	}
}

// ack answers the callback when the event carries one; text events
// have nothing to acknowledge.
func (b *Bot) ack(e gateway.Event, notice string) {
	if e.CallbackID == "" {
		return
	}
	if err := b.gw.Acknowledge(e.CallbackID, notice); err != nil {
		log.Printf("[Bot] acknowledge failed: %v", err)
	}
}

// render edits the originating message for callbacks and sends a new
// message otherwise.
func (b *Bot) render(e gateway.Event, text string, kb gateway.Keyboard) {
	var err error
	if e.Kind == gateway.EventCallback && e.MessageID != 0 {
		err = b.gw.EditText(e.ChatID, e.MessageID, text, kb)
	} else {
		err = b.gw.SendText(e.ChatID, text, kb)
	}
	if err != nil {
		log.Printf("[Bot] render failed for chat %d: %v", e.ChatID, err)
	}
}

func (b *Bot) send(e gateway.Event, text string, kb gateway.Keyboard) {
	if err := b.gw.SendText(e.ChatID, text, kb); err != nil {
		log.Printf("[Bot] send failed for chat %d: %v", e.ChatID, err)
	}
}

// failStorage reports a storage failure to the user and logs detail.
func (b *Bot) failStorage(e gateway.Event, err error) {
	log.Printf("[Bot] storage error for chat %d: %v", e.ChatID, err)
	if e.CallbackID != "" {
		b.ack(e, msgGenericError)
		return
	}
	b.send(e, msgGenericError, nil)
}

// restartStep answers a handler reached without its scratch state,
// instead of dereferencing a missing field.
func (b *Bot) restartStep(e gateway.Event, s *session.Session) {
	log.Printf("[Bot] missing scratch state for chat %d in %s", e.ChatID, s.State)
	b.ack(e, msgRestartStep)
	if e.CallbackID == "" {
		b.send(e, msgRestartStep, nil)
	}
	b.showMainMenu(e, s, false)
}

func displayName(e gateway.Event) string {
	name := e.FirstName
	if e.LastName != "" {
		name += " " + e.LastName
	}
	return strings.TrimSpace(name)
}
