package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("X-User-ID", "42")

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func validBody() string {
	return `{"tourId": 7, "contactEmail": "ivan@example.com", "participants": [{"fullName": "Иван Сидоров"}]}`
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{
		resp: &createBooking.Response{
			ID:             15,
			Token:          uuid.New(),
			Reference:      "BK-20250610-A1B2",
			UserID:         42,
			TourID:         7,
			Participants:   1,
			Status:         "pending",
			PaymentStatus:  "unpaid",
			TotalPrice:     "150.50",
			Currency:       "EUR",
			ContactName:    "Иван Сидоров",
			ContactEmail:   "ivan@example.com",
			SpotsRemaining: 4,
			CreatedAt:      time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		},
	}

	rec := doRequest(t, uc, validBody())

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(42), uc.gotReq.UserID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BK-20250610-A1B2", resp.Reference)
	assert.Equal(t, 4, resp.SpotsRemaining)
}

func TestHandle_NoSpotsReportsRemaining(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.NoSpotsError{Remaining: 2, Requested: 5}}

	rec := doRequest(t, uc, validBody())

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "недостаточно свободных мест: осталось мест - 2", resp.Error)
}

func TestHandle_InvalidTotalPriceOverride(t *testing.T) {
	uc := &fakeUseCase{}

	body := `{"tourId": 7, "contactEmail": "ivan@example.com", "participants": [{"fullName": "Иван Сидоров"}], "totalPriceOverride": "not-a-number"}`
	rec := doRequest(t, uc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_TourNotFound(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrTourNotFound}

	rec := doRequest(t, uc, validBody())

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
