package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/doctorsportal/portal-api/internal/handlers"
	"github.com/doctorsportal/portal-api/internal/middleware"
	"github.com/doctorsportal/portal-api/internal/utils"
)

// The store is never reached in these cases, so the handler runs without a
// database behind it.
func newBookingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &handlers.Handler{}
	r := gin.New()
	r.GET("/booking", middleware.AuthMiddleware(), h.GetBookings)
	r.GET("/booking/:id", middleware.AuthMiddleware(), h.GetBooking)
	r.POST("/booking", h.CreateBooking)
	return r
}

func TestGetBookingsOwnership(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newBookingRouter()

	token, err := utils.GenerateJWT("mail1@example.com")
	require.NoError(t, err)

	t.Run("querying another patient is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/booking?patient=mail2@example.com", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing patient parameter is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/booking", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/booking?patient=mail1@example.com", nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetBookingInvalidID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newBookingRouter()

	token, err := utils.GenerateJWT("mail1@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/booking/not-an-objectid", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingInvalidBody(t *testing.T) {
	r := newBookingRouter()

	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func newBookingMockRouter(mt *mtest.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewHandler(mt.DB, nil)
	r := gin.New()
	r.POST("/booking", h.CreateBooking)
	r.PATCH("/booking/:id", h.PayBooking)
	return r
}

func postBooking(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingAdmission(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	const body = `{"treatment":"Cleaning","date":"May 15, 2022","slot":"9am","patient":"mail1@example.com"}`

	mt.Run("new booking is admitted", func(mt *mtest.T) {
		r := newBookingMockRouter(mt)
		ns := mt.DB.Name() + ".bookings"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		rec := postBooking(r, body)

		assert.Equal(mt, http.StatusOK, rec.Code)
		assert.Contains(mt, rec.Body.String(), `"success":true`)
	})

	mt.Run("repeated booking returns the first record", func(mt *mtest.T) {
		r := newBookingMockRouter(mt)
		ns := mt.DB.Name() + ".bookings"
		existing := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "treatment", Value: "Cleaning"},
			{Key: "date", Value: "May 15, 2022"},
			{Key: "slot", Value: "9am"},
			{Key: "patient", Value: "mail1@example.com"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, existing))

		rec := postBooking(r, body)

		assert.Equal(mt, http.StatusOK, rec.Code)
		assert.Contains(mt, rec.Body.String(), `"success":false`)
		assert.Contains(mt, rec.Body.String(), `"treatment":"Cleaning"`)
		assert.Contains(mt, rec.Body.String(), `"slot":"9am"`)

		// The duplicate never reaches an insert.
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("lost insert race returns the winner", func(mt *mtest.T) {
		r := newBookingMockRouter(mt)
		ns := mt.DB.Name() + ".bookings"
		winner := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "treatment", Value: "Cleaning"},
			{Key: "date", Value: "May 15, 2022"},
			{Key: "slot", Value: "10am"},
			{Key: "patient", Value: "mail1@example.com"},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "duplicate key error",
			}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, winner),
		)

		rec := postBooking(r, body)

		assert.Equal(mt, http.StatusOK, rec.Code)
		assert.Contains(mt, rec.Body.String(), `"success":false`)
		assert.Contains(mt, rec.Body.String(), `"slot":"10am"`)
	})
}

func TestPayBooking(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown booking leaves no payment behind", func(mt *mtest.T) {
		r := newBookingMockRouter(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		id := primitive.NewObjectID().Hex()
		req := httptest.NewRequest(http.MethodPatch, "/booking/"+id,
			strings.NewReader(`{"transactionId":"tx_1","amount":50}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(mt, http.StatusNotFound, rec.Code)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("payment marks the booking paid", func(mt *mtest.T) {
		r := newBookingMockRouter(mt)
		ns := mt.DB.Name() + ".bookings"
		id := primitive.NewObjectID()
		paid := bson.D{
			{Key: "_id", Value: id},
			{Key: "treatment", Value: "Cleaning"},
			{Key: "paid", Value: true},
			{Key: "transactionId", Value: "tx_1"},
		}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, paid),
		)

		req := httptest.NewRequest(http.MethodPatch, "/booking/"+id.Hex(),
			strings.NewReader(`{"transactionId":"tx_1","amount":50}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(mt, http.StatusOK, rec.Code)
		assert.Contains(mt, rec.Body.String(), `"paid":true`)
		assert.Contains(mt, rec.Body.String(), `"transactionId":"tx_1"`)
	})
}
