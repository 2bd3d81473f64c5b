package room_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	otelMocks "hotel/infras/otel/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	lifecycleMocks "hotel/internal/domains/lifecycle/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/handlers/room"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	roomID         = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
	bookingID      = "6f1e2d3c-4b5a-4978-8a6b-5c4d3e2f1a0b"
	otherBookingID = "1d2c3b4a-5f6e-4788-9a0b-c1d2e3f4a5b6"
)

type fixture struct {
	service   *roomMocks.MockRoomService
	lifecycle *lifecycleMocks.MockLifecycle
	router    http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		service:   roomMocks.NewMockRoomService(ctrl),
		lifecycle: lifecycleMocks.NewMockLifecycle(ctrl),
	}

	handler := room.New(f.service, f.lifecycle, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)
	f.router = router

	return f
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	f.router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandler_GetAvailability(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  int
	}{
		{name: "missing end", query: "?start=2026-03-14T10:00:00%2B07:00", code: http.StatusBadRequest},
		{name: "malformed start", query: "?start=tomorrow&end=2026-03-14T13:00:00%2B07:00", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			res := f.do(http.MethodGet, "/v1/rooms/"+roomID+"/availability"+tt.query, "")

			assert.Equal(t, tt.code, res.Code)
		})
	}

	t.Run("malformed excluded booking", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(http.MethodGet, "/v1/rooms/"+roomID+"/availability?start=2026-03-14T10:00:00%2B07:00&end=2026-03-14T13:00:00%2B07:00&exclude_booking_id=b9", "")

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("malformed room id", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(http.MethodGet, "/v1/rooms/101/availability?start=2026-03-14T10:00:00%2B07:00&end=2026-03-14T13:00:00%2B07:00", "")

		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Contains(t, res.Body.String(), failure.RoomNotFoundError.Message)
	})

	t.Run("passes the window through", func(t *testing.T) {
		f := newFixture(t)

		f.lifecycle.EXPECT().IsRoomAvailable(gomock.Any(), roomID, gomock.Any(), gomock.Any(), otherBookingID).
			DoAndReturn(func(_ any, _ string, start, end time.Time, _ string) (dto.AvailabilityResponse, error) {
				assert.Equal(t, 3*time.Hour, end.Sub(start))

				return dto.AvailabilityResponse{RoomID: roomID, Available: true}, nil
			})

		res := f.do(http.MethodGet, "/v1/rooms/"+roomID+"/availability?start=2026-03-14T10:00:00%2B07:00&end=2026-03-14T13:00:00%2B07:00&exclude_booking_id="+otherBookingID, "")

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), `"available":true`)
	})

	t.Run("reversed window", func(t *testing.T) {
		f := newFixture(t)

		f.lifecycle.EXPECT().IsRoomAvailable(gomock.Any(), roomID, gomock.Any(), gomock.Any(), "").
			Return(dto.AvailabilityResponse{}, failure.InvalidIntervalError)

		res := f.do(http.MethodGet, "/v1/rooms/"+roomID+"/availability?start=2026-03-14T13:00:00%2B07:00&end=2026-03-14T10:00:00%2B07:00", "")

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestHandler_CheckIn(t *testing.T) {
	t.Run("walk-in", func(t *testing.T) {
		f := newFixture(t)

		f.lifecycle.EXPECT().CheckIn(gomock.Any(), roomID, gomock.Any()).
			DoAndReturn(func(_ any, _ string, req bookingDto.CheckInRequest) (bookingDto.BookingResponse, error) {
				assert.Equal(t, 2, req.GuestCount)

				return bookingDto.BookingResponse{ID: bookingID, Status: bookingModel.StatusCheckedIn}, nil
			})

		res := f.do(http.MethodPost, "/v1/rooms/"+roomID+"/check-in", `{"plan_type":"short","guest_name":"Malee","guest_count":2}`)

		assert.Equal(t, http.StatusCreated, res.Code)
		assert.Contains(t, res.Body.String(), `"status":"checked_in"`)
	})

	t.Run("room occupied", func(t *testing.T) {
		f := newFixture(t)

		f.lifecycle.EXPECT().CheckIn(gomock.Any(), roomID, gomock.Any()).
			Return(bookingDto.BookingResponse{}, fmt.Errorf("room is occupied: %w", failure.RoomNotAvailableError))

		res := f.do(http.MethodPost, "/v1/rooms/"+roomID+"/check-in", `{"plan_type":"short","guest_name":"Malee","guest_count":2}`)

		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(http.MethodPost, "/v1/rooms/"+roomID+"/check-in", `{"plan_type":"short","guest_name":"Malee","guest_count":2,"status":"occupied"}`)

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestHandler_GetRooms(t *testing.T) {
	t.Run("board filter", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.GetRoomsResponse{
			Rooms: []dto.RoomResponse{{Number: "101", Status: roomModel.StatusCleaning}},
		}, nil)

		res := f.do(http.MethodGet, "/v1/rooms?status=cleaning", "")

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), `"number":"101"`)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(http.MethodGet, "/v1/rooms?status=dirty", "")

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}
