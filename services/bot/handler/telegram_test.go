package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/services/bot/gateway"
	"github.com/kyudan/motemovil/services/bot/mocks"
)

func testLogger(t *testing.T) *logger.ZapLogger {
	t.Helper()
	zl, err := logger.NewZapLogger(models.LoggerConfig{Level: "error"})
	require.NoError(t, err)
	return zl
}

func textUpdate(updateID, userID int64, text string) gateway.Update {
	return gateway.Update{
		UpdateID: updateID,
		Message: &gateway.Message{
			MessageID: updateID,
			From:      &gateway.TgUser{ID: userID, FirstName: "Marco"},
			Text:      text,
		},
	}
}

func TestDispatch_Text(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockConversationUC(ctrl)
	h := NewTelegramHandler(nil, uc, testLogger(t))

	uc.EXPECT().HandleText(gomock.Any(), models.TextMessage{
		UserID:      100,
		DisplayName: "Marco",
		Body:        "/start",
	}).Return(nil)

	h.Dispatch(context.Background(), textUpdate(1, 100, "/start"))
}

func TestDispatch_Location(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockConversationUC(ctrl)
	h := NewTelegramHandler(nil, uc, testLogger(t))

	uc.EXPECT().HandleLocation(gomock.Any(), models.LocationMessage{
		UserID:      100,
		DisplayName: "Marco",
		Latitude:    -16.5,
		Longitude:   -68.15,
	}).Return(nil)

	h.Dispatch(context.Background(), gateway.Update{
		UpdateID: 2,
		Message: &gateway.Message{
			From:     &gateway.TgUser{ID: 100, FirstName: "Marco"},
			Location: &gateway.TgPoint{Latitude: -16.5, Longitude: -68.15},
		},
	})
}

func TestDispatch_PhotoUsesLargestVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockConversationUC(ctrl)
	h := NewTelegramHandler(nil, uc, testLogger(t))

	uc.EXPECT().HandlePhoto(gomock.Any(), models.PhotoMessage{
		UserID:      100,
		DisplayName: "Marco",
		FileID:      "big",
	}).Return(nil)

	h.Dispatch(context.Background(), gateway.Update{
		UpdateID: 3,
		Message: &gateway.Message{
			From:  &gateway.TgUser{ID: 100, FirstName: "Marco"},
			Photo: []gateway.TgPhoto{{FileID: "small"}, {FileID: "big"}},
		},
	})
}

func TestDispatch_IgnoresNonMessageAndUnknownKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockConversationUC(ctrl)
	h := NewTelegramHandler(nil, uc, testLogger(t))

	// No expectations on the usecase: none of these may reach it.
	h.Dispatch(context.Background(), gateway.Update{UpdateID: 4})
	h.Dispatch(context.Background(), gateway.Update{
		UpdateID: 5,
		Message:  &gateway.Message{From: &gateway.TgUser{ID: 100}},
	})
	h.Dispatch(context.Background(), gateway.Update{
		UpdateID: 6,
		Message:  &gateway.Message{Text: "no sender"},
	})
}

func TestDispatch_UsecaseErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockConversationUC(ctrl)
	h := NewTelegramHandler(nil, uc, testLogger(t))

	uc.EXPECT().HandleText(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	h.Dispatch(context.Background(), textUpdate(7, 100, "hola"))
}

type stubSource struct {
	batches [][]gateway.Update
	calls   int
	cancel  context.CancelFunc
}

func (s *stubSource) GetUpdates(ctx context.Context) ([]gateway.Update, error) {
	if s.calls >= len(s.batches) {
		s.cancel()
		return nil, ctx.Err()
	}
	batch := s.batches[s.calls]
	s.calls++
	return batch, nil
}

func TestRun_DispatchesInOrderUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	source := &stubSource{
		batches: [][]gateway.Update{
			{textUpdate(1, 100, "uno"), textUpdate(2, 100, "dos")},
			{textUpdate(3, 200, "tres")},
		},
		cancel: cancel,
	}

	uc := mocks.NewMockConversationUC(ctrl)
	var seen []string
	uc.EXPECT().HandleText(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.TextMessage) error {
			seen = append(seen, msg.Body)
			return nil
		}).Times(3)

	h := NewTelegramHandler(source, uc, testLogger(t))
	err := h.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"uno", "dos", "tres"}, seen)
}
