package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/internal/utils"
)

const maxRenderedMatches = 5

func fieldsForRole(role models.Role) []fieldPrompt {
	if role == models.RolePassenger {
		return passengerFields
	}
	return driverFields
}

// currentField returns the prompt slot the session points at. A stored index
// can fall outside the list when a persisted session survives a change to the
// prompts, so the caller must check ok before using it.
func currentField(session *models.Session) (fieldPrompt, bool) {
	fields := fieldsForRole(session.Role)
	if session.FieldIndex < 0 || session.FieldIndex >= len(fields) {
		return fieldPrompt{}, false
	}
	return fields[session.FieldIndex], true
}

// resetStaleSession discards a session whose field index no longer fits the
// prompt list and restarts the user from the menu.
func (uc *BotUC) resetStaleSession(ctx context.Context, session *models.Session) error {
	uc.logger.Warn("Resetting session with out-of-range field index",
		logger.Int64("user_id", session.UserID),
		logger.Int("field_index", session.FieldIndex),
		logger.String("role", string(session.Role)))

	if err := uc.sessions.Delete(ctx, session.UserID); err != nil {
		uc.logger.Warn("Failed to clear session", logger.Int64("user_id", session.UserID), logger.Err(err))
	}

	return uc.send(ctx, session.UserID, startHintText, mainMenuReplies(), false)
}

// HandleText processes an inbound text message. Global control inputs are
// honored regardless of the session's current state; everything else is
// interpreted against it.
func (uc *BotUC) HandleText(ctx context.Context, msg models.TextMessage) error {
	body := strings.TrimSpace(msg.Body)

	switch body {
	case "/start":
		return uc.handleStart(ctx, msg)
	case btnHelp:
		return uc.send(ctx, msg.UserID, helpText, mainMenuReplies(), false)
	case btnFinishTrip:
		return uc.handleTerminate(ctx, msg.UserID, models.TripStatusFinished)
	case btnCancelTrip:
		return uc.handleTerminate(ctx, msg.UserID, models.TripStatusCancelled)
	case btnCancel:
		return uc.handleFlowCancel(ctx, msg.UserID)
	case btnDriver:
		return uc.handleRoleSelection(ctx, msg, models.RoleDriver)
	case btnPassenger:
		return uc.handleRoleSelection(ctx, msg, models.RolePassenger)
	}

	session, err := uc.sessions.Get(ctx, msg.UserID)
	if err != nil {
		uc.logger.Error("Failed to load session", logger.Int64("user_id", msg.UserID), logger.Err(err))
		return uc.send(ctx, msg.UserID, transientErrorText, nil, false)
	}

	if session == nil || session.State == models.StateIdle {
		return uc.send(ctx, msg.UserID, startHintText, mainMenuReplies(), false)
	}

	switch session.State {
	case models.StateAwaitingLocation:
		// Only a location event advances this state.
		return uc.send(ctx, msg.UserID, locationPromptText, locationReplies(), true)
	case models.StateCollectingField:
		return uc.handleFieldInput(ctx, session, body)
	case models.StateAwaitingKYC:
		return uc.send(ctx, msg.UserID, kycPromptText, nil, false)
	}

	return uc.send(ctx, msg.UserID, startHintText, mainMenuReplies(), false)
}

// HandleLocation processes a shared location. Outside the awaiting-location
// state the event re-prompts without advancing.
func (uc *BotUC) HandleLocation(ctx context.Context, msg models.LocationMessage) error {
	session, err := uc.sessions.Get(ctx, msg.UserID)
	if err != nil {
		uc.logger.Error("Failed to load session", logger.Int64("user_id", msg.UserID), logger.Err(err))
		return uc.send(ctx, msg.UserID, transientErrorText, nil, false)
	}

	if session == nil || session.State == models.StateIdle {
		return uc.send(ctx, msg.UserID, startHintText, mainMenuReplies(), false)
	}

	switch session.State {
	case models.StateAwaitingLocation:
		session.Latitude = msg.Latitude
		session.Longitude = msg.Longitude
		session.State = models.StateCollectingField
		session.FieldIndex = 0
		if err := uc.sessions.Put(ctx, session); err != nil {
			return uc.send(ctx, msg.UserID, transientErrorText, nil, false)
		}

		first := fieldsForRole(session.Role)[0]
		return uc.sendRemoveKeyboard(ctx, msg.UserID, first.prompt)

	case models.StateCollectingField:
		current, ok := currentField(session)
		if !ok {
			return uc.resetStaleSession(ctx, session)
		}
		return uc.send(ctx, msg.UserID, "Necesito una respuesta de texto.\n\n"+current.prompt, nil, false)

	case models.StateAwaitingKYC:
		return uc.send(ctx, msg.UserID, kycPromptText, nil, false)
	}

	return nil
}

// HandlePhoto processes an image upload. Photos only matter to the KYC gate;
// in any other state they are ignored.
func (uc *BotUC) HandlePhoto(ctx context.Context, msg models.PhotoMessage) error {
	session, err := uc.sessions.Get(ctx, msg.UserID)
	if err != nil {
		uc.logger.Error("Failed to load session", logger.Int64("user_id", msg.UserID), logger.Err(err))
		return uc.send(ctx, msg.UserID, transientErrorText, nil, false)
	}

	if session == nil || session.State != models.StateAwaitingKYC {
		return nil
	}

	// The image itself is an opaque credential; receiving one passes the gate.
	if err := uc.profiles.MarkVerified(ctx, msg.UserID); err != nil {
		uc.logger.Error("Failed to mark profile verified", logger.Int64("user_id", msg.UserID), logger.Err(err))
		return uc.send(ctx, msg.UserID, transientErrorText, nil, false)
	}

	if err := uc.sessions.Delete(ctx, msg.UserID); err != nil {
		uc.logger.Warn("Failed to clear session", logger.Int64("user_id", msg.UserID), logger.Err(err))
	}

	return uc.send(ctx, msg.UserID, kycDoneText, mainMenuReplies(), false)
}

func (uc *BotUC) handleStart(ctx context.Context, msg models.TextMessage) error {
	if _, err := uc.profiles.UpsertProfile(ctx, msg.UserID, msg.DisplayName); err != nil {
		uc.logger.Error("Failed to upsert profile", logger.Int64("user_id", msg.UserID), logger.Err(err))
	}

	if err := uc.sessions.Delete(ctx, msg.UserID); err != nil {
		uc.logger.Warn("Failed to clear session", logger.Int64("user_id", msg.UserID), logger.Err(err))
	}

	return uc.send(ctx, msg.UserID, welcomeText, mainMenuReplies(), false)
}

func (uc *BotUC) handleFlowCancel(ctx context.Context, userID int64) error {
	if err := uc.sessions.Delete(ctx, userID); err != nil {
		uc.logger.Warn("Failed to clear session", logger.Int64("user_id", userID), logger.Err(err))
	}
	return uc.send(ctx, userID, flowCancelledText, mainMenuReplies(), false)
}

func (uc *BotUC) handleTerminate(ctx context.Context, userID int64, outcome models.TripStatus) error {
	// Terminal commands reset the conversation no matter where it is.
	if err := uc.sessions.Delete(ctx, userID); err != nil {
		uc.logger.Warn("Failed to clear session", logger.Int64("user_id", userID), logger.Err(err))
	}

	_, err := uc.guard.Terminate(ctx, userID, outcome)
	if err != nil {
		if errors.Is(err, ErrNoActiveTrip) {
			return uc.send(ctx, userID, noActiveTripText, mainMenuReplies(), false)
		}
		uc.logger.Error("Failed to terminate trip", logger.Int64("user_id", userID), logger.Err(err))
		return uc.send(ctx, userID, transientErrorText, mainMenuReplies(), false)
	}

	text := tripFinishedText
	if outcome == models.TripStatusCancelled {
		text = tripCancelledText
	}
	return uc.send(ctx, userID, text, mainMenuReplies(), false)
}

func (uc *BotUC) handleRoleSelection(ctx context.Context, msg models.TextMessage, role models.Role) error {
	if _, err := uc.profiles.UpsertProfile(ctx, msg.UserID, msg.DisplayName); err != nil {
		uc.logger.Error("Failed to upsert profile", logger.Int64("user_id", msg.UserID), logger.Err(err))
		return uc.send(ctx, msg.UserID, transientErrorText, mainMenuReplies(), false)
	}

	decision, err := uc.guard.CheckEntry(ctx, msg.UserID)
	if err != nil {
		uc.logger.Error("Entry check failed", logger.Int64("user_id", msg.UserID), logger.Err(err))
		return uc.send(ctx, msg.UserID, transientErrorText, mainMenuReplies(), false)
	}

	switch decision {
	case EntryDenyActiveTrip:
		text := denyActiveDriverText
		if role == models.RolePassenger {
			text = denyActivePassengerText
		}
		return uc.send(ctx, msg.UserID, text, mainMenuReplies(), false)

	case EntryDenyUnverified:
		session := &models.Session{
			UserID:      msg.UserID,
			DisplayName: msg.DisplayName,
			State:       models.StateAwaitingKYC,
			Role:        role,
			StartedAt:   time.Now(),
		}
		if err := uc.sessions.Put(ctx, session); err != nil {
			return uc.send(ctx, msg.UserID, transientErrorText, mainMenuReplies(), false)
		}
		return uc.sendRemoveKeyboard(ctx, msg.UserID, kycPromptText)
	}

	session := &models.Session{
		UserID:      msg.UserID,
		DisplayName: msg.DisplayName,
		State:       models.StateAwaitingLocation,
		Role:        role,
		StartedAt:   time.Now(),
	}
	if err := uc.sessions.Put(ctx, session); err != nil {
		uc.logger.Error("Failed to store session", logger.Int64("user_id", msg.UserID), logger.Err(err))
		return uc.send(ctx, msg.UserID, transientErrorText, mainMenuReplies(), false)
	}

	return uc.send(ctx, msg.UserID, locationPromptText, locationReplies(), true)
}

func (uc *BotUC) handleFieldInput(ctx context.Context, session *models.Session, body string) error {
	fields := fieldsForRole(session.Role)
	current, ok := currentField(session)
	if !ok {
		return uc.resetStaleSession(ctx, session)
	}
	session.PutField(current.key, body)

	if session.FieldIndex < len(fields)-1 {
		session.FieldIndex++
		if err := uc.sessions.Put(ctx, session); err != nil {
			return uc.send(ctx, session.UserID, transientErrorText, nil, false)
		}
		return uc.send(ctx, session.UserID, fields[session.FieldIndex].prompt, nil, false)
	}

	// Final field: keep the session in place until completion succeeds so a
	// store failure lets the user resend this answer.
	if err := uc.sessions.Put(ctx, session); err != nil {
		return uc.send(ctx, session.UserID, transientErrorText, nil, false)
	}

	return uc.complete(ctx, session)
}

// complete runs the terminal step of a flow: trip creation, then best-effort
// extraction for drivers or matching for passengers.
func (uc *BotUC) complete(ctx context.Context, session *models.Session) error {
	placeholderRef, err := uc.msgGW.SendText(ctx, models.SendText{
		UserID: session.UserID,
		Body:   processingText,
	})
	if err != nil {
		uc.logger.Warn("Failed to send processing message", logger.Int64("user_id", session.UserID), logger.Err(err))
		placeholderRef = 0
	}

	rawText := renderRawDescription(session)
	trip := uc.buildTrip(session, rawText)

	if err := uc.trips.CreateTrip(ctx, trip); err != nil {
		// The session stays on the final field so the user can resend it.
		uc.logger.Error("Failed to persist trip",
			logger.Int64("user_id", session.UserID),
			logger.String("role", string(session.Role)),
			logger.Err(err))
		return uc.respond(ctx, session.UserID, placeholderRef, transientErrorText)
	}

	event := models.TripEvent{
		TripID:    trip.ID.String(),
		OwnerID:   trip.OwnerID,
		Role:      trip.Role,
		Status:    trip.Status,
		CreatedAt: time.Now(),
	}
	if err := uc.eventsGW.PublishTripEvent(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish trip event", logger.String("trip_id", event.TripID), logger.Err(err))
	}

	var text string
	if session.Role == models.RoleDriver {
		text = uc.enrichDriverTrip(ctx, trip, rawText)
	} else {
		text = uc.runMatching(ctx, session, trip)
	}

	if err := uc.sessions.Delete(ctx, session.UserID); err != nil {
		uc.logger.Warn("Failed to clear session", logger.Int64("user_id", session.UserID), logger.Err(err))
	}

	return uc.respond(ctx, session.UserID, placeholderRef, text)
}

// enrichDriverTrip runs best-effort extraction over the collected text and
// stores the structured details on the freshly created trip. Any failure
// leaves the trip in manual mode.
func (uc *BotUC) enrichDriverTrip(ctx context.Context, trip *models.Trip, rawText string) string {
	details := uc.extractGW.Extract(ctx, rawText, models.RoleDriver)
	if details == nil {
		return driverDoneManualText
	}

	if err := uc.trips.UpdateTripDetails(ctx, trip.ID, details); err != nil {
		uc.logger.Warn("Failed to store trip details",
			logger.String("trip_id", trip.ID.String()),
			logger.Err(err))
		return driverDoneManualText
	}

	trip.Details = details
	return driverDoneText
}

func (uc *BotUC) buildTrip(session *models.Session, rawText string) *models.Trip {
	now := time.Now()
	trip := &models.Trip{
		OwnerID:        session.UserID,
		Role:           session.Role,
		Latitude:       session.Latitude,
		Longitude:      session.Longitude,
		Geohash:        utils.EncodeLocation(models.Location{Latitude: session.Latitude, Longitude: session.Longitude}),
		RawDescription: rawText,
		Status:         models.TripStatusActive,
	}

	if session.Role == models.RoleDriver {
		if at, ok := utils.ParseClock(session.Field("departure"), now); ok {
			trip.DepartureAt = &at
		}
	} else {
		if at, ok := utils.ParseClock(session.Field("deadline"), now); ok {
			trip.DeadlineAt = &at
		}
	}

	return trip
}

// runMatching executes the passenger-side matching step. A matching failure
// degrades to "no matches"; it never fails the flow.
func (uc *BotUC) runMatching(ctx context.Context, session *models.Session, trip *models.Trip) string {
	now := time.Now()
	candidates, err := uc.matcher.FindMatches(
		ctx,
		session.Latitude, session.Longitude,
		now,
		trip.DeadlineAt,
		uc.cfg.Match.SearchRadiusM,
	)
	if err != nil {
		uc.logger.Error("Matching failed", logger.Int64("user_id", session.UserID), logger.Err(err))
		return noMatchesText
	}

	if len(candidates) == 0 {
		return noMatchesText
	}

	tripIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		tripIDs = append(tripIDs, c.Trip.ID.String())
	}
	event := models.MatchFoundEvent{
		PassengerID: session.UserID,
		TripIDs:     tripIDs,
		Radius:      uc.cfg.Match.SearchRadiusM,
		CreatedAt:   now,
	}
	if err := uc.eventsGW.PublishMatchFound(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish match event", logger.Int64("user_id", session.UserID), logger.Err(err))
	}

	return uc.renderMatches(session, candidates)
}

func (uc *BotUC) renderMatches(session *models.Session, candidates []models.MatchCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 ¡Encontramos %d conductor(es) en tu zona!\n\n", len(candidates))

	shown := candidates
	if len(shown) > maxRenderedMatches {
		shown = shown[:maxRenderedMatches]
	}

	for i, c := range shown {
		fmt.Fprintf(&b, "%d. 🚗 a %.0f m", i+1, c.DistanceM)
		if uc.matcher.Intercepts(session.Latitude, session.Longitude, c.Trip) {
			b.WriteString(" 🔥")
		}
		if c.Trip.DepartureAt != nil {
			fmt.Fprintf(&b, " — sale %s", c.Trip.DepartureAt.Format("15:04"))
		}
		if name := c.Trip.Details["name"]; name != "" {
			fmt.Fprintf(&b, " — %s", name)
		}
		if vehicle := c.Trip.Details["vehicle"]; vehicle != "" {
			fmt.Fprintf(&b, " (%s)", vehicle)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTe avisaremos apenas confirmen el viaje.")
	return b.String()
}

func renderRawDescription(session *models.Session) string {
	parts := make([]string, 0, len(session.Fields))
	for _, f := range session.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Key, f.Value))
	}
	return strings.Join(parts, "\n")
}

func (uc *BotUC) send(ctx context.Context, userID int64, body string, replies []string, requestLocation bool) error {
	_, err := uc.msgGW.SendText(ctx, models.SendText{
		UserID:           userID,
		Body:             body,
		SuggestedReplies: replies,
		RequestLocation:  requestLocation,
	})
	if err != nil {
		uc.logger.Error("Failed to send message", logger.Int64("user_id", userID), logger.Err(err))
	}
	return err
}

func (uc *BotUC) sendRemoveKeyboard(ctx context.Context, userID int64, body string) error {
	_, err := uc.msgGW.SendText(ctx, models.SendText{
		UserID:        userID,
		Body:          body,
		RemoveReplies: true,
	})
	if err != nil {
		uc.logger.Error("Failed to send message", logger.Int64("user_id", userID), logger.Err(err))
	}
	return err
}

// respond edits the processing placeholder in place when one exists, and
// falls back to a fresh message when it does not.
func (uc *BotUC) respond(ctx context.Context, userID, placeholderRef int64, body string) error {
	if placeholderRef != 0 {
		err := uc.msgGW.EditText(ctx, models.EditText{
			UserID:     userID,
			MessageRef: placeholderRef,
			Body:       body,
		})
		if err == nil {
			return nil
		}
		uc.logger.Warn("Failed to edit placeholder, sending new message",
			logger.Int64("user_id", userID), logger.Err(err))
	}
	return uc.send(ctx, userID, body, mainMenuReplies(), false)
}
