package services

import (
	"math"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// PaymentService creates Stripe payment intents for booking prices.
type PaymentService struct{}

func NewPaymentService(apiKey string) *PaymentService {
	stripe.Key = apiKey
	return &PaymentService{}
}

// CreateIntent opens a card payment intent for the given price in USD and
// returns the client secret the frontend needs to confirm it.
func (s *PaymentService) CreateIntent(price float64) (string, error) {
	amount := int64(math.Round(price * 100))
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
