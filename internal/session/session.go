package session

// State labels the step of the conversation a user is in.
type State string

const (
	StateMainMenu            State = "MAIN_MENU"
	StateAwaitingPhone       State = "AWAITING_PHONE"
	StateBrowsingCategories  State = "BROWSING_CATEGORIES"
	StateViewingProduct      State = "VIEWING_PRODUCT"
	StateCartView            State = "CART_VIEW"
	StateEnteringAddress     State = "ENTERING_ADDRESS"
	StateAwaitingAddressText State = "AWAITING_ADDRESS_TEXT"
	StateAwaitingInfo        State = "AWAITING_ADDITIONAL_INFO"
	StateSelectingPayment    State = "SELECTING_PAYMENT"
)

// CartItem is one line of the in-progress cart. Price already includes
// the size modifier, selected extras and the quantity multiplication.
type CartItem struct {
	ProductID   uint     `json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	Size        string   `json:"size,omitempty"`
	Extras      []string `json:"extras,omitempty"`
	Price       int64    `json:"price"`
}

// ProductDraft is the in-progress configuration of a product before it
// is committed to the cart.
type ProductDraft struct {
	ProductID uint     `json:"product_id"`
	Size      string   `json:"size,omitempty"`
	Quantity  int      `json:"quantity"`
	Extras    []string `json:"extras,omitempty"`
}

// Increase bumps the quantity by one.
func (d *ProductDraft) Increase() {
	d.Quantity++
}

// Decrease lowers the quantity by one, never below 1.
func (d *ProductDraft) Decrease() {
	if d.Quantity > 1 {
		d.Quantity--
	}
}

// ToggleExtra adds the extra when absent and removes it when present.
func (d *ProductDraft) ToggleExtra(name string) (added bool) {
	for i, existing := range d.Extras {
		if existing == name {
			d.Extras = append(d.Extras[:i], d.Extras[i+1:]...)
			return false
		}
	}
	d.Extras = append(d.Extras, name)
	return true
}

// AddressDraft is the in-progress delivery address.
type AddressDraft struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Session is the per-user conversation state. It lives only for the
// lifetime of the backing store and is never part of order records.
type Session struct {
	TelegramID     int64         `json:"telegram_id"`
	State          State         `json:"state"`
	Cart           []CartItem    `json:"cart"`
	Draft          *ProductDraft `json:"draft,omitempty"`
	AddressDraft   *AddressDraft `json:"address_draft,omitempty"`
	AdditionalInfo string        `json:"additional_info,omitempty"`
}

// CartSubtotal sums the line prices of the cart.
func (s *Session) CartSubtotal() int64 {
	var subtotal int64
	for _, item := range s.Cart {
		subtotal += item.Price
	}
	return subtotal
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.Cart = nil
}

// ResetCheckout drops the checkout scratch fields, keeping the cart.
func (s *Session) ResetCheckout() {
	s.AddressDraft = nil
	s.AdditionalInfo = ""
}
