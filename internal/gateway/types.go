package gateway

import "encoding/json"

// EventKind tags the inbound event union.
type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventContact
	EventLocation
	EventCallback
)

// Event is a typed inbound event from Telegram. Exactly the fields for
// its Kind are populated; the rest stay zero.
type Event struct {
	Kind      EventKind
	ChatID    int64
	UserID    int64
	FirstName string
	LastName  string
	MessageID int

	// EventCommand
	Command string

	// EventText
	Text string

	// EventContact
	Phone string

	// EventLocation
	Latitude  float64
	Longitude float64

	// EventCallback
	CallbackID   string
	CallbackData string
}

// Button is one labeled action in a keyboard grid.
type Button struct {
	Label string
	Data  string
}

// Keyboard is an ordered grid of buttons rendered inline under a
// message.
type Keyboard [][]Button

// Row is a convenience constructor for a keyboard row.
func Row(buttons ...Button) []Button {
	return buttons
}

// Telegram API wire types, limited to the fields this bot reads.

type update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *message       `json:"message"`
	CallbackQuery *callbackQuery `json:"callback_query"`
}

type message struct {
	MessageID int       `json:"message_id"`
	From      *tgUser   `json:"from"`
	Chat      chat      `json:"chat"`
	Text      string    `json:"text"`
	Contact   *contact  `json:"contact"`
	Location  *location `json:"location"`
}

type tgUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type chat struct {
	ID int64 `json:"id"`
}

type contact struct {
	PhoneNumber string `json:"phone_number"`
}

type location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type callbackQuery struct {
	ID      string   `json:"id"`
	From    *tgUser  `json:"from"`
	Message *message `json:"message"`
	Data    string   `json:"data"`
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type replyKeyboardButton struct {
	Text           string `json:"text"`
	RequestContact bool   `json:"request_contact,omitempty"`
}

type replyKeyboardMarkup struct {
	Keyboard        [][]replyKeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool                    `json:"resize_keyboard"`
	OneTimeKeyboard bool                    `json:"one_time_keyboard,omitempty"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}
