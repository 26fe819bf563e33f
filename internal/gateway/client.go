package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const pollTimeout = 30 // seconds, getUpdates long-poll window

// Client talks to the Telegram Bot API over plain HTTP. Outbound calls
// cover the render contract the bot needs; Poll delivers inbound
// events one at a time.
type Client struct {
	token string
	http  *http.Client
}

// NewClient creates a Client for the given bot token.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		http:  &http.Client{Timeout: (pollTimeout + 10) * time.Second},
	}
}

func (c *Client) call(method string, payload interface{}, result interface{}) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/%s", c.token, method)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !decoded.OK {
		return fmt.Errorf("telegram %s: %s", method, decoded.Description)
	}
	if result != nil {
		return json.Unmarshal(decoded.Result, result)
	}
	return nil
}

func toInlineMarkup(kb Keyboard) *inlineKeyboardMarkup {
	if len(kb) == 0 {
		return nil
	}
	markup := &inlineKeyboardMarkup{}
	for _, row := range kb {
		var buttons []inlineKeyboardButton
		for _, b := range row {
			buttons = append(buttons, inlineKeyboardButton{Text: b.Label, CallbackData: b.Data})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}

// SendText sends a new message, optionally with an inline keyboard.
func (c *Client) SendText(chatID int64, text string, kb Keyboard) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if markup := toInlineMarkup(kb); markup != nil {
		payload["reply_markup"] = markup
	}
	return c.call("sendMessage", payload, nil)
}

// EditText rewrites an existing message in place. Telegram rejects
// edits that change nothing; that case is reported as success.
func (c *Client) EditText(chatID int64, messageID int, text string, kb Keyboard) error {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	if markup := toInlineMarkup(kb); markup != nil {
		payload["reply_markup"] = markup
	}
	err := c.call("editMessageText", payload, nil)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

// RequestContact asks the user to share their phone number via a
// one-time reply keyboard.
func (c *Client) RequestContact(chatID int64, text, buttonLabel string) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
		"reply_markup": replyKeyboardMarkup{
			Keyboard:        [][]replyKeyboardButton{{{Text: buttonLabel, RequestContact: true}}},
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		},
	}
	return c.call("sendMessage", payload, nil)
}

// Acknowledge answers a callback query with an optional transient
// notice.
func (c *Client) Acknowledge(callbackID, notice string) error {
	payload := map[string]interface{}{
		"callback_query_id": callbackID,
	}
	if notice != "" {
		payload["text"] = notice
	}
	return c.call("answerCallbackQuery", payload, nil)
}

// Poll long-polls getUpdates and hands each event to the handler, one
// update fully handled before the next is fetched. It returns when the
// context is cancelled.
func (c *Client) Poll(ctx context.Context, handler func(Event)) {
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload := map[string]interface{}{
			"offset":  offset,
			"timeout": pollTimeout,
		}

		var updates []update
		if err := c.call("getUpdates", payload, &updates); err != nil {
			log.Printf("[Telegram] getUpdates failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			if event, ok := toEvent(u); ok {
				handler(event)
			}
		}
	}
}

func toEvent(u update) (Event, bool) {
	if cb := u.CallbackQuery; cb != nil && cb.From != nil {
		event := Event{
			Kind:         EventCallback,
			UserID:       cb.From.ID,
			FirstName:    cb.From.FirstName,
			LastName:     cb.From.LastName,
			CallbackID:   cb.ID,
			CallbackData: cb.Data,
		}
		if cb.Message != nil {
			event.ChatID = cb.Message.Chat.ID
			event.MessageID = cb.Message.MessageID
		} else {
			event.ChatID = cb.From.ID
		}
		return event, true
	}

	msg := u.Message
	if msg == nil || msg.From == nil {
		return Event{}, false
	}

	event := Event{
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
		MessageID: msg.MessageID,
	}

	switch {
	case msg.Contact != nil:
		event.Kind = EventContact
		event.Phone = msg.Contact.PhoneNumber
	case msg.Location != nil:
		event.Kind = EventLocation
		event.Latitude = msg.Location.Latitude
		event.Longitude = msg.Location.Longitude
	case strings.HasPrefix(msg.Text, "/"):
		event.Kind = EventCommand
		event.Command = strings.TrimPrefix(strings.Fields(msg.Text)[0], "/")
	case msg.Text != "":
		event.Kind = EventText
		event.Text = msg.Text
	default:
		return Event{}, false
	}

	return event, true
}
