//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	"stayhub/tests/common/httptest"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testUserID = "user_2abc"

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockBookings *commandsmock.MockBookingCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockBookings, s.mockPayments, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", testUserID)
		c.Set("user_role", "guest")
		c.Next()
	}

	// Setup routes
	s.router.POST("/bookings/check-availability", s.handler.CheckAvailability)
	s.router.POST("/bookings/book", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings/user", authMiddleware, s.handler.GetUserBookings)
	s.router.GET("/bookings/hotel", authMiddleware, s.handler.GetHotelDashboard)
	s.router.POST("/bookings/pay", authMiddleware, s.handler.Pay)
	s.router.POST("/bookings/payment-webhook", s.handler.PaymentWebhook)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func availabilityBody(roomID uuid.UUID) map[string]any {
	return map[string]any{
		"roomId":       roomID,
		"checkInDate":  "2024-03-01",
		"checkOutDate": "2024-03-04",
	}
}

func bookingBody(roomID uuid.UUID) map[string]any {
	body := availabilityBody(roomID)
	body["guests"] = 2
	return body
}

// ================================================================================
// TestCheckAvailability
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckAvailability() {
	url := "/bookings/check-availability"
	roomID := uuid.New()

	s.Run("success: reports availability in the success envelope", func() {
		s.mockBookings.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(true, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, availabilityBody(roomID), "")

		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Success)
		s.True(res.IsAvailable)
	})

	s.Run("success: an occupied room is still a 200", func() {
		s.mockBookings.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(false, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, availabilityBody(roomID), "")

		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Success)
		s.False(res.IsAvailable)
	})

	s.Run("failure: unknown room returns 404", func() {
		s.mockBookings.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(false, errs.ErrRoomNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, availabilityBody(roomID), "")

		httptest.AssertEnvelope(s.T(), rec, http.StatusNotFound, false)
	})

	s.Run("failure: malformed date returns 400 before the command runs", func() {
		body := availabilityBody(roomID)
		body["checkInDate"] = "March 1st"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		httptest.AssertEnvelope(s.T(), rec, http.StatusBadRequest, false)
	})

	s.Run("failure: missing field returns 400", func() {
		body := availabilityBody(roomID)
		delete(body, "checkOutDate")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		httptest.AssertEnvelope(s.T(), rec, http.StatusBadRequest, false)
	})
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings/book"
	roomID := uuid.New()
	newBookingID := uuid.New()

	s.Run("success: returns 201 with the booking id", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), testUserID, gomock.Any()).
			Return(newBookingID, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bookingBody(roomID), "bearer-token")

		var res resdto.BookingCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.True(res.Success)
		s.Equal(newBookingID, res.BookingID)
	})

	s.Run("room taken: 200 with success=false, not an error status", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), testUserID, gomock.Any()).
			Return(uuid.Nil, errs.ErrRoomUnavailable)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bookingBody(roomID), "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusOK, false)
	})

	s.Run("failure: unknown room returns 404", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), testUserID, gomock.Any()).
			Return(uuid.Nil, errs.ErrRoomNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bookingBody(roomID), "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusNotFound, false)
	})

	s.Run("failure: invalid guest count returns 400", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), testUserID, gomock.Any()).
			Return(uuid.Nil, errs.ErrInvalidGuestCount)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bookingBody(roomID), "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusBadRequest, false)
	})

	s.Run("failure: unauthenticated returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bookingBody(roomID), "")

		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGetUserBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetUserBookings() {
	url := "/bookings/user"

	s.Run("success: returns the caller's bookings", func() {
		views := []*queries.BookingView{
			builder.NewBookingBuilder().BuildView(),
			builder.NewBookingBuilder().BuildView(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), testUserID).Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var res resdto.UserBookingsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Success)
		s.Len(res.Bookings, 2)
		s.Equal(views[0].ID, res.Bookings[0].ID)
	})

	s.Run("success: no bookings is an empty list, not an error", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), testUserID).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var res resdto.UserBookingsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Success)
		s.Empty(res.Bookings)
	})

	s.Run("failure: unauthenticated returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGetHotelDashboard
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetHotelDashboard() {
	url := "/bookings/hotel"

	s.Run("success: totals and bookings from the owner fold", func() {
		views := []*queries.BookingView{
			builder.NewBookingBuilder().BuildView(),
			builder.NewBookingBuilder().BuildView(),
		}
		s.mockQueries.EXPECT().DashboardByOwner(gomock.Any(), testUserID).Return(&queries.HotelDashboard{
			TotalBookings:     2,
			TotalRevenueCents: 60000,
			Bookings:          views,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var res resdto.DashboardResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Success)
		s.Equal(2, res.DashboardData.TotalBookings)
		s.Equal(int64(60000), res.DashboardData.TotalRevenue)
		s.Len(res.DashboardData.Bookings, 2)
	})

	s.Run("failure: no registered hotel returns 404", func() {
		s.mockQueries.EXPECT().DashboardByOwner(gomock.Any(), testUserID).
			Return(nil, errs.ErrHotelNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusNotFound, false)
	})
}

// ================================================================================
// TestPay
// ================================================================================

func (s *BookingHandlerTestSuite) TestPay() {
	url := "/bookings/pay"
	bookingID := uuid.New()
	body := map[string]any{"bookingId": bookingID}

	s.Run("success: returns the checkout URL", func() {
		s.mockPayments.EXPECT().CreateSession(gomock.Any(), testUserID, bookingID).
			Return("https://pay.example/cs_test_1", nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var res resdto.PaymentSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Success)
		s.Equal("https://pay.example/cs_test_1", res.URL)
	})

	s.Run("failure: unknown booking returns 404", func() {
		s.mockPayments.EXPECT().CreateSession(gomock.Any(), testUserID, bookingID).
			Return("", errs.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusNotFound, false)
	})

	s.Run("failure: someone else's booking returns 403", func() {
		s.mockPayments.EXPECT().CreateSession(gomock.Any(), testUserID, bookingID).
			Return("", errs.ErrUnauthorized)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusForbidden, false)
	})

	s.Run("failure: already paid returns 409", func() {
		s.mockPayments.EXPECT().CreateSession(gomock.Any(), testUserID, bookingID).
			Return("", errs.ErrAlreadyPaid)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusConflict, false)
	})

	s.Run("failure: gateway outage returns 502", func() {
		s.mockPayments.EXPECT().CreateSession(gomock.Any(), testUserID, bookingID).
			Return("", errs.ErrPaymentGateway)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		httptest.AssertEnvelope(s.T(), rec, http.StatusBadGateway, false)
	})
}

// ================================================================================
// TestPaymentWebhook
// ================================================================================

func (s *BookingHandlerTestSuite) TestPaymentWebhook() {
	url := "/bookings/payment-webhook"
	payload := []byte(`{"type":"checkout.session.completed"}`)

	s.Run("success: acknowledged with received=true", func() {
		s.mockPayments.EXPECT().HandleConfirmation(gomock.Any(), payload, "t=1,v1=abc").
			Return(nil)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, map[string]string{
			"Stripe-Signature": "t=1,v1=abc",
		})

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"received":true}`, rec.Body.String())
	})

	s.Run("failure: missing signature header returns 400 without verification", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Missing signature header")
	})

	s.Run("failure: bad signature returns 400", func() {
		s.mockPayments.EXPECT().HandleConfirmation(gomock.Any(), payload, "t=1,v1=bad").
			Return(errs.ErrInvalidSignature)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, map[string]string{
			"Stripe-Signature": "t=1,v1=bad",
		})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid signature")
	})
}
