package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/services/bot"
	"github.com/kyudan/motemovil/services/bot/mocks"
)

type ucFixture struct {
	uc       *BotUC
	trips    *mocks.MockTripRepository
	profiles *mocks.MockProfileRepository
	sessions *mocks.MockSessionStore
	msgGW    *mocks.MockMessagingGateway
	extract  *mocks.MockExtractionGateway
	events   *mocks.MockEventsGateway
}

func newUCFixture(t *testing.T, ctrl *gomock.Controller) *ucFixture {
	t.Helper()
	f := &ucFixture{
		trips:    mocks.NewMockTripRepository(ctrl),
		profiles: mocks.NewMockProfileRepository(ctrl),
		sessions: mocks.NewMockSessionStore(ctrl),
		msgGW:    mocks.NewMockMessagingGateway(ctrl),
		extract:  mocks.NewMockExtractionGateway(ctrl),
		events:   mocks.NewMockEventsGateway(ctrl),
	}
	cfg := &models.Config{
		Match: models.MatchConfig{SearchRadiusM: 1000, InterceptionRadiusM: 500},
	}
	f.uc = NewBotUC(f.trips, f.profiles, f.sessions, f.msgGW, f.extract, f.events, cfg, testLogger(t))
	return f
}

func (f *ucFixture) expectSend(t *testing.T, check func(msg models.SendText)) *gomock.Call {
	return f.msgGW.EXPECT().SendText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.SendText) (int64, error) {
			if check != nil {
				check(msg)
			}
			return 1, nil
		})
}

func TestHandleText_StartResetsAndGreets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.profiles.EXPECT().UpsertProfile(gomock.Any(), int64(100), "Marco").Return(&models.UserProfile{UserID: 100}, nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, welcomeText, msg.Body)
		assert.Contains(t, msg.SuggestedReplies, btnDriver)
		assert.Contains(t, msg.SuggestedReplies, btnPassenger)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, DisplayName: "Marco", Body: "/start"})
	assert.NoError(t, err)
}

func TestHandleText_NoSessionHints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(nil, nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, startHintText, msg.Body)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "hola"})
	assert.NoError(t, err)
}

func TestHandleText_RoleSelectionStartsFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.profiles.EXPECT().UpsertProfile(gomock.Any(), int64(100), "Marco").Return(&models.UserProfile{UserID: 100}, nil)
	f.trips.EXPECT().GetOpenTripByOwner(gomock.Any(), int64(100)).Return(nil, bot.ErrTripNotFound)
	f.profiles.EXPECT().GetProfile(gomock.Any(), int64(100)).Return(nil, bot.ErrProfileNotFound)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, session *models.Session) error {
			assert.Equal(t, models.StateAwaitingLocation, session.State)
			assert.Equal(t, models.RoleDriver, session.Role)
			assert.False(t, session.StartedAt.IsZero())
			return nil
		})
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, locationPromptText, msg.Body)
		assert.True(t, msg.RequestLocation)
		assert.Contains(t, msg.SuggestedReplies, btnShareLocation)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, DisplayName: "Marco", Body: btnDriver})
	assert.NoError(t, err)
}

func TestHandleText_RoleSelectionDeniedByOpenTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.profiles.EXPECT().UpsertProfile(gomock.Any(), int64(100), gomock.Any()).Return(&models.UserProfile{UserID: 100}, nil)
	f.trips.EXPECT().GetOpenTripByOwner(gomock.Any(), int64(100)).
		Return(&models.Trip{ID: uuid.New(), Status: models.TripStatusActive}, nil)
	// No session is created when entry is denied.
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, denyActivePassengerText, msg.Body)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: btnPassenger})
	assert.NoError(t, err)
}

func TestHandleText_RoleSelectionRoutesToKYC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.profiles.EXPECT().UpsertProfile(gomock.Any(), int64(100), gomock.Any()).Return(&models.UserProfile{UserID: 100}, nil)
	f.trips.EXPECT().GetOpenTripByOwner(gomock.Any(), int64(100)).Return(nil, bot.ErrTripNotFound)
	f.profiles.EXPECT().GetProfile(gomock.Any(), int64(100)).Return(&models.UserProfile{
		UserID:         100,
		CompletedTrips: 1,
		Verified:       false,
	}, nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, session *models.Session) error {
			assert.Equal(t, models.StateAwaitingKYC, session.State)
			return nil
		})
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, kycPromptText, msg.Body)
		assert.True(t, msg.RemoveReplies)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: btnDriver})
	assert.NoError(t, err)
}

func TestHandleLocation_AdvancesToFirstQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(&models.Session{
		UserID: 100,
		State:  models.StateAwaitingLocation,
		Role:   models.RoleDriver,
	}, nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, session *models.Session) error {
			assert.Equal(t, models.StateCollectingField, session.State)
			assert.Equal(t, 0, session.FieldIndex)
			assert.Equal(t, -16.5, session.Latitude)
			assert.Equal(t, -68.15, session.Longitude)
			return nil
		})
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, driverFields[0].prompt, msg.Body)
		assert.True(t, msg.RemoveReplies)
	})

	err := f.uc.HandleLocation(context.Background(), models.LocationMessage{
		UserID:    100,
		Latitude:  -16.5,
		Longitude: -68.15,
	})
	assert.NoError(t, err)
}

func TestHandleLocation_IgnoredWhileCollecting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(&models.Session{
		UserID:     100,
		State:      models.StateCollectingField,
		Role:       models.RoleDriver,
		FieldIndex: 2,
	}, nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Contains(t, msg.Body, driverFields[2].prompt)
	})

	err := f.uc.HandleLocation(context.Background(), models.LocationMessage{UserID: 100, Latitude: 1, Longitude: 1})
	assert.NoError(t, err)
}

func TestHandleText_RePromptsWhileAwaitingLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(&models.Session{
		UserID: 100,
		State:  models.StateAwaitingLocation,
		Role:   models.RoleDriver,
	}, nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, locationPromptText, msg.Body)
		assert.True(t, msg.RequestLocation)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "Avenida Arce 123"})
	assert.NoError(t, err)
}

func TestHandleText_FieldInputAdvancesIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(&models.Session{
		UserID:     100,
		State:      models.StateCollectingField,
		Role:       models.RoleDriver,
		FieldIndex: 0,
	}, nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, session *models.Session) error {
			assert.Equal(t, 1, session.FieldIndex)
			assert.Equal(t, "Marco", session.Field("name"))
			return nil
		})
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, driverFields[1].prompt, msg.Body)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "Marco"})
	assert.NoError(t, err)
}

func driverSessionAtLastField() *models.Session {
	return &models.Session{
		UserID:     100,
		State:      models.StateCollectingField,
		Role:       models.RoleDriver,
		FieldIndex: len(driverFields) - 1,
		Latitude:   -16.5,
		Longitude:  -68.15,
		Fields: []models.CollectedField{
			{Key: "name", Value: "Marco"},
			{Key: "route", Value: "Sopocachi a San Miguel"},
			{Key: "seats", Value: "3"},
			{Key: "fare", Value: "5 bs"},
			{Key: "departure", Value: "14:30"},
		},
	}
}

func TestHandleText_OutOfRangeFieldIndexResetsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	// A persisted session can outlive a change to the prompt list.
	session := driverSessionAtLastField()
	session.FieldIndex = len(driverFields) + 3
	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(session, nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, startHintText, msg.Body)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "cualquier cosa"})
	assert.NoError(t, err)
}

func TestHandleLocation_OutOfRangeFieldIndexResetsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	session := driverSessionAtLastField()
	session.FieldIndex = -1
	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(session, nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, startHintText, msg.Body)
	})

	err := f.uc.HandleLocation(context.Background(), models.LocationMessage{UserID: 100, Latitude: -16.5, Longitude: -68.15})
	assert.NoError(t, err)
}

func TestHandleText_DriverCompletionPersistsTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(driverSessionAtLastField(), nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	f.msgGW.EXPECT().SendText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.SendText) (int64, error) {
			assert.Equal(t, processingText, msg.Body)
			return 42, nil
		})

	f.trips.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, trip *models.Trip) error {
			assert.Equal(t, int64(100), trip.OwnerID)
			assert.Equal(t, models.RoleDriver, trip.Role)
			assert.Equal(t, models.TripStatusActive, trip.Status)
			assert.NotEmpty(t, trip.Geohash)
			require.NotNil(t, trip.DepartureAt)
			assert.Equal(t, 14, trip.DepartureAt.Hour())
			assert.Equal(t, 30, trip.DepartureAt.Minute())
			trip.ID = uuid.New()
			return nil
		})

	f.extract.EXPECT().Extract(gomock.Any(), gomock.Any(), models.RoleDriver).DoAndReturn(
		func(_ context.Context, freeText string, _ models.Role) models.TripDetails {
			assert.Contains(t, freeText, "Marco")
			assert.Contains(t, freeText, "Toyota Corolla 1234ABC")
			return models.TripDetails{"name": "Marco", "seats": "3"}
		})

	f.trips.EXPECT().UpdateTripDetails(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, details models.TripDetails) error {
			assert.Equal(t, "Marco", details["name"])
			assert.Equal(t, "3", details["seats"])
			return nil
		})

	f.events.EXPECT().PublishTripEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)

	f.msgGW.EXPECT().EditText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.EditText) error {
			assert.Equal(t, int64(42), msg.MessageRef)
			assert.Equal(t, driverDoneText, msg.Body)
			return nil
		})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "Toyota Corolla 1234ABC"})
	assert.NoError(t, err)
}

func TestHandleText_DriverCompletionManualMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(driverSessionAtLastField(), nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	f.msgGW.EXPECT().SendText(gomock.Any(), gomock.Any()).Return(int64(42), nil)
	f.trips.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, trip *models.Trip) error {
			assert.Nil(t, trip.Details)
			assert.Contains(t, trip.RawDescription, "Marco")
			return nil
		})
	f.extract.EXPECT().Extract(gomock.Any(), gomock.Any(), models.RoleDriver).Return(nil)
	f.events.EXPECT().PublishTripEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.msgGW.EXPECT().EditText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.EditText) error {
			assert.Equal(t, driverDoneManualText, msg.Body)
			return nil
		})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "Toyota Corolla 1234ABC"})
	assert.NoError(t, err)
}

func TestHandleText_DetailsUpdateFailureFallsBackToManual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(driverSessionAtLastField(), nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	f.msgGW.EXPECT().SendText(gomock.Any(), gomock.Any()).Return(int64(42), nil)
	f.trips.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).Return(nil)
	f.extract.EXPECT().Extract(gomock.Any(), gomock.Any(), models.RoleDriver).
		Return(models.TripDetails{"name": "Marco"})
	f.trips.EXPECT().UpdateTripDetails(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))
	f.events.EXPECT().PublishTripEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.msgGW.EXPECT().EditText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.EditText) error {
			assert.Equal(t, driverDoneManualText, msg.Body)
			return nil
		})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "Toyota Corolla 1234ABC"})
	assert.NoError(t, err)
}

func TestHandleText_StoreFailureKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(driverSessionAtLastField(), nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	f.msgGW.EXPECT().SendText(gomock.Any(), gomock.Any()).Return(int64(42), nil)
	f.trips.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).Return(errors.New("unique violation"))
	// The session is not deleted, so resending the last answer retries.
	f.msgGW.EXPECT().EditText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.EditText) error {
			assert.Equal(t, transientErrorText, msg.Body)
			return nil
		})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: "Toyota Corolla 1234ABC"})
	assert.NoError(t, err)
}

func TestHandleText_PassengerCompletionMatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	session := &models.Session{
		UserID:     200,
		State:      models.StateCollectingField,
		Role:       models.RolePassenger,
		FieldIndex: len(passengerFields) - 1,
		Latitude:   -16.5000,
		Longitude:  -68.1500,
		Fields: []models.CollectedField{
			{Key: "destination", Value: "San Miguel"},
		},
	}
	f.sessions.EXPECT().Get(gomock.Any(), int64(200)).Return(session, nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	f.msgGW.EXPECT().SendText(gomock.Any(), gomock.Any()).Return(int64(7), nil)

	f.trips.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, trip *models.Trip) error {
			assert.Equal(t, models.RolePassenger, trip.Role)
			return nil
		})
	f.events.EXPECT().PublishTripEvent(gomock.Any(), gomock.Any()).Return(nil)

	near := driverTrip(-16.5005, -68.1505, nil) // ~77 m
	near.Details = models.TripDetails{"name": "Marco", "vehicle": "Toyota"}
	far := driverTrip(-16.6000, -68.2000, nil) // ~12 km
	f.trips.EXPECT().ListActiveDriverTrips(gomock.Any(), gomock.Any()).
		Return([]*models.Trip{far, near}, nil)

	f.events.EXPECT().PublishMatchFound(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event models.MatchFoundEvent) error {
			assert.Equal(t, int64(200), event.PassengerID)
			assert.Equal(t, []string{near.ID.String()}, event.TripIDs)
			return nil
		})
	f.sessions.EXPECT().Delete(gomock.Any(), int64(200)).Return(nil)

	f.msgGW.EXPECT().EditText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.EditText) error {
			assert.Equal(t, int64(7), msg.MessageRef)
			assert.Contains(t, msg.Body, "1 conductor")
			assert.Contains(t, msg.Body, "Marco")
			assert.Contains(t, msg.Body, "🔥")
			return nil
		})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 200, Body: "cuando sea"})
	assert.NoError(t, err)
}

func TestHandleText_PassengerCompletionNoMatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	session := &models.Session{
		UserID:     200,
		State:      models.StateCollectingField,
		Role:       models.RolePassenger,
		FieldIndex: len(passengerFields) - 1,
		Latitude:   -16.5000,
		Longitude:  -68.1500,
		Fields: []models.CollectedField{
			{Key: "destination", Value: "San Miguel"},
		},
	}
	f.sessions.EXPECT().Get(gomock.Any(), int64(200)).Return(session, nil)
	f.sessions.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	f.msgGW.EXPECT().SendText(gomock.Any(), gomock.Any()).Return(int64(7), nil)
	f.trips.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().PublishTripEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.trips.EXPECT().ListActiveDriverTrips(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(200)).Return(nil)
	f.msgGW.EXPECT().EditText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.EditText) error {
			assert.Equal(t, noMatchesText, msg.Body)
			return nil
		})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 200, Body: "cuando sea"})
	assert.NoError(t, err)
}

func TestHandleText_FinishTripCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	tripID := uuid.New()
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.trips.EXPECT().GetOpenTripByOwner(gomock.Any(), int64(100)).Return(&models.Trip{
		ID:      tripID,
		OwnerID: 100,
		Role:    models.RoleDriver,
		Status:  models.TripStatusActive,
	}, nil)
	f.trips.EXPECT().UpdateTripStatus(gomock.Any(), tripID, models.TripStatusFinished).Return(nil)
	f.profiles.EXPECT().IncrementCompletedTrips(gomock.Any(), int64(100)).Return(nil)
	f.events.EXPECT().PublishTripEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, tripFinishedText, msg.Body)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: btnFinishTrip})
	assert.NoError(t, err)
}

func TestHandleText_FinishWithoutActiveTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.trips.EXPECT().GetOpenTripByOwner(gomock.Any(), int64(100)).Return(nil, bot.ErrTripNotFound)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, noActiveTripText, msg.Body)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: btnFinishTrip})
	assert.NoError(t, err)
}

func TestHandleText_CancelFlowClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, flowCancelledText, msg.Body)
	})

	err := f.uc.HandleText(context.Background(), models.TextMessage{UserID: 100, Body: btnCancel})
	assert.NoError(t, err)
}

func TestHandlePhoto_VerifiesDuringKYC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(&models.Session{
		UserID: 100,
		State:  models.StateAwaitingKYC,
	}, nil)
	f.profiles.EXPECT().MarkVerified(gomock.Any(), int64(100)).Return(nil)
	f.sessions.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)
	f.expectSend(t, func(msg models.SendText) {
		assert.Equal(t, kycDoneText, msg.Body)
		assert.Contains(t, msg.SuggestedReplies, btnDriver)
	})

	err := f.uc.HandlePhoto(context.Background(), models.PhotoMessage{UserID: 100, FileID: "photo-1"})
	assert.NoError(t, err)
}

func TestHandlePhoto_IgnoredOutsideKYC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	f.sessions.EXPECT().Get(gomock.Any(), int64(100)).Return(nil, nil)

	err := f.uc.HandlePhoto(context.Background(), models.PhotoMessage{UserID: 100, FileID: "photo-1"})
	assert.NoError(t, err)
}

func TestRenderRawDescription_PreservesFieldOrder(t *testing.T) {
	session := driverSessionAtLastField()
	session.PutField("vehicle", "Toyota Corolla 1234ABC")

	raw := renderRawDescription(session)
	lines := strings.Split(raw, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "name: Marco", lines[0])
	assert.Equal(t, "vehicle: Toyota Corolla 1234ABC", lines[5])
}

func TestBuildTrip_UnparseableClockLeavesNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newUCFixture(t, ctrl)

	session := driverSessionAtLastField()
	session.PutField("departure", "apenas pueda")

	trip := f.uc.buildTrip(session, "x")
	assert.Nil(t, trip.DepartureAt)
	assert.NotEmpty(t, trip.Geohash)
}
