package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
)

// Update is one inbound event from the Bot API long poll
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is the subset of the Bot API message payload the bot consumes
type Message struct {
	MessageID int64     `json:"message_id"`
	From      *TgUser   `json:"from"`
	Text      string    `json:"text"`
	Location  *TgPoint  `json:"location"`
	Photo     []TgPhoto `json:"photo"`
}

// TgUser identifies the sender of a message
type TgUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName joins the sender's first and last name
func (u *TgUser) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TgPoint is a shared location
type TgPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TgPhoto is one size variant of an uploaded photo
type TgPhoto struct {
	FileID string `json:"file_id"`
}

type replyKeyboard struct {
	Keyboard        [][]keyboardButton `json:"keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard"`
	OneTimeKeyboard bool               `json:"one_time_keyboard,omitempty"`
}

type keyboardButton struct {
	Text            string `json:"text"`
	RequestLocation bool   `json:"request_location,omitempty"`
}

type removeKeyboard struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// TelegramGateway talks to the Telegram Bot API over plain HTTP. It implements
// bot.MessagingGateway and provides the long-poll update source for the
// dispatcher.
type TelegramGateway struct {
	cfg        models.TelegramConfig
	httpClient *http.Client
	logger     *logger.ZapLogger
	offset     int64
}

// NewTelegramGateway creates a new Bot API gateway
func NewTelegramGateway(cfg models.TelegramConfig, zapLogger *logger.ZapLogger) *TelegramGateway {
	return &TelegramGateway{
		cfg: cfg,
		httpClient: &http.Client{
			// Long polls hold the connection for PollTimeout; leave headroom.
			Timeout: cfg.PollTimeout + 10*time.Second,
		},
		logger: zapLogger,
	}
}

func (g *TelegramGateway) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", g.cfg.APIBaseURL, g.cfg.Token, method)
}

func (g *TelegramGateway) post(ctx context.Context, method string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !api.OK {
		return fmt.Errorf("%s rejected by Bot API: %s", method, api.Description)
	}

	if result != nil {
		if err := json.Unmarshal(api.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}

	return nil
}

// SendText delivers a message, optionally with a suggested-reply keyboard or
// a location-request button. Returns the message id for later edits.
func (g *TelegramGateway) SendText(ctx context.Context, msg models.SendText) (int64, error) {
	payload := map[string]interface{}{
		"chat_id": msg.UserID,
		"text":    msg.Body,
	}

	switch {
	case msg.RemoveReplies:
		payload["reply_markup"] = removeKeyboard{RemoveKeyboard: true}
	case len(msg.SuggestedReplies) > 0 || msg.RequestLocation:
		kb := replyKeyboard{ResizeKeyboard: true}
		if msg.RequestLocation {
			replies := msg.SuggestedReplies
			if len(replies) == 0 {
				replies = []string{"Compartir ubicación"}
			}
			kb.Keyboard = append(kb.Keyboard, []keyboardButton{
				{Text: replies[0], RequestLocation: true},
			})
			for _, reply := range replies[1:] {
				kb.Keyboard = append(kb.Keyboard, []keyboardButton{{Text: reply}})
			}
		} else {
			for _, reply := range msg.SuggestedReplies {
				kb.Keyboard = append(kb.Keyboard, []keyboardButton{{Text: reply}})
			}
		}
		payload["reply_markup"] = kb
	}

	var sent Message
	if err := g.post(ctx, "sendMessage", payload, &sent); err != nil {
		return 0, err
	}

	return sent.MessageID, nil
}

// EditText replaces the body of a previously sent message
func (g *TelegramGateway) EditText(ctx context.Context, msg models.EditText) error {
	payload := map[string]interface{}{
		"chat_id":    msg.UserID,
		"message_id": msg.MessageRef,
		"text":       msg.Body,
	}
	return g.post(ctx, "editMessageText", payload, nil)
}

// GetUpdates long-polls the Bot API for the next batch of updates and
// advances the acknowledged offset.
func (g *TelegramGateway) GetUpdates(ctx context.Context) ([]Update, error) {
	payload := map[string]interface{}{
		"offset":  g.offset,
		"timeout": int(g.cfg.PollTimeout.Seconds()),
	}

	var updates []Update
	if err := g.post(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}

	for _, u := range updates {
		if u.UpdateID >= g.offset {
			g.offset = u.UpdateID + 1
		}
	}

	return updates, nil
}

// DropPendingUpdates discards updates accumulated while the bot was offline
func (g *TelegramGateway) DropPendingUpdates(ctx context.Context) error {
	payload := map[string]interface{}{
		"offset":  -1,
		"timeout": 0,
	}

	var updates []Update
	if err := g.post(ctx, "getUpdates", payload, &updates); err != nil {
		return err
	}
	if len(updates) > 0 {
		g.offset = updates[len(updates)-1].UpdateID + 1
	}

	g.logger.Info("Dropped pending updates", logger.Int("count", len(updates)))
	return nil
}
