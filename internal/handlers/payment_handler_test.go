package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/doctorsportal/portal-api/internal/handlers"
)

func TestCreatePaymentIntentInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &handlers.Handler{}
	r := gin.New()
	r.POST("/create-payment-intent", h.CreatePaymentIntent)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
