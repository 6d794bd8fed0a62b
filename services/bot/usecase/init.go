package usecase

import (
	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/services/bot"
)

// BotUC implements bot.ConversationUC. It owns the per-user conversation
// state machine and drives the activity guard, extraction adapter and
// matching engine from it.
type BotUC struct {
	trips     bot.TripRepository
	profiles  bot.ProfileRepository
	sessions  bot.SessionStore
	msgGW     bot.MessagingGateway
	extractGW bot.ExtractionGateway
	eventsGW  bot.EventsGateway
	guard     *ActivityGuard
	matcher   *Matcher
	cfg       *models.Config
	logger    *logger.ZapLogger
}

// NewBotUC creates a new conversation usecase instance
func NewBotUC(
	trips bot.TripRepository,
	profiles bot.ProfileRepository,
	sessions bot.SessionStore,
	msgGW bot.MessagingGateway,
	extractGW bot.ExtractionGateway,
	eventsGW bot.EventsGateway,
	cfg *models.Config,
	zapLogger *logger.ZapLogger,
) *BotUC {
	return &BotUC{
		trips:     trips,
		profiles:  profiles,
		sessions:  sessions,
		msgGW:     msgGW,
		extractGW: extractGW,
		eventsGW:  eventsGW,
		guard:     NewActivityGuard(trips, profiles, eventsGW, zapLogger),
		matcher:   NewMatcher(trips, cfg.Match, zapLogger),
		cfg:       cfg,
		logger:    zapLogger,
	}
}
