package handler

import (
	"context"
	"time"

	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/services/bot"
	"github.com/kyudan/motemovil/services/bot/gateway"
)

const pollRetryDelay = 3 * time.Second

// UpdateSource supplies batches of inbound updates. Implemented by the
// Telegram long-poll gateway.
type UpdateSource interface {
	GetUpdates(ctx context.Context) ([]gateway.Update, error)
}

// TelegramHandler is the single-threaded dispatcher between the Bot API long
// poll and the conversation usecase. Updates are processed strictly in order,
// one at a time, so the conversation state machine never races with itself.
type TelegramHandler struct {
	source UpdateSource
	uc     bot.ConversationUC
	logger *logger.ZapLogger
}

// NewTelegramHandler creates a new update dispatcher
func NewTelegramHandler(source UpdateSource, uc bot.ConversationUC, zapLogger *logger.ZapLogger) *TelegramHandler {
	return &TelegramHandler{
		source: source,
		uc:     uc,
		logger: zapLogger,
	}
}

// Run polls for updates and dispatches them until ctx is cancelled. Poll
// failures back off and retry; they never stop the loop.
func (h *TelegramHandler) Run(ctx context.Context) error {
	h.logger.Info("Update dispatcher started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := h.source.GetUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			h.logger.Warn("Failed to fetch updates", logger.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			h.Dispatch(ctx, update)
		}
	}
}

// Dispatch routes one update into the conversation usecase. Usecase errors
// are logged and swallowed so one bad update cannot wedge the stream.
func (h *TelegramHandler) Dispatch(ctx context.Context, update gateway.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	userID := msg.From.ID
	displayName := msg.From.DisplayName()

	var err error
	switch {
	case msg.Location != nil:
		err = h.uc.HandleLocation(ctx, models.LocationMessage{
			UserID:      userID,
			DisplayName: displayName,
			Latitude:    msg.Location.Latitude,
			Longitude:   msg.Location.Longitude,
		})
	case len(msg.Photo) > 0:
		// The Bot API sends photo size variants smallest first.
		err = h.uc.HandlePhoto(ctx, models.PhotoMessage{
			UserID:      userID,
			DisplayName: displayName,
			FileID:      msg.Photo[len(msg.Photo)-1].FileID,
		})
	case msg.Text != "":
		err = h.uc.HandleText(ctx, models.TextMessage{
			UserID:      userID,
			DisplayName: displayName,
			Body:        msg.Text,
		})
	default:
		return
	}

	if err != nil {
		h.logger.Error("Update handling failed",
			logger.Int64("update_id", update.UpdateID),
			logger.Int64("user_id", userID),
			logger.Err(err))
	}
}
