package bot

import (
	"context"

	"github.com/kyudan/motemovil/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/kyudan/motemovil/services/bot ConversationUC

// ConversationUC is the conversation usecase consumed by the transport
// handler. One call per inbound event; outbound messages are emitted as side
// effects through the messaging gateway.
type ConversationUC interface {
	HandleText(ctx context.Context, msg models.TextMessage) error
	HandleLocation(ctx context.Context, msg models.LocationMessage) error
	HandlePhoto(ctx context.Context, msg models.PhotoMessage) error
}
