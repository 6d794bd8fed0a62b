package bot

import (
	"context"

	"github.com/kyudan/motemovil/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateways.go -package=mocks github.com/kyudan/motemovil/services/bot MessagingGateway,ExtractionGateway,EventsGateway

// MessagingGateway delivers outbound messages through the transport.
// SendText returns a message reference usable with EditText.
type MessagingGateway interface {
	SendText(ctx context.Context, msg models.SendText) (int64, error)
	EditText(ctx context.Context, msg models.EditText) error
}

// ExtractionGateway turns freeform trip text into structured fields via the
// external text-understanding service. A nil result means extraction was
// unavailable or failed and the caller proceeds in manual mode; it is never
// an error.
type ExtractionGateway interface {
	Extract(ctx context.Context, freeText string, role models.Role) models.TripDetails
}

// EventsGateway publishes domain events. Publishing is best-effort: failures
// are logged by implementations and never surfaced to the user.
type EventsGateway interface {
	PublishTripEvent(ctx context.Context, event models.TripEvent) error
	PublishMatchFound(ctx context.Context, event models.MatchFoundEvent) error
}
