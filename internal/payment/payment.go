// Package payment implements the simulated checkout. Form fields must be
// non-empty but are otherwise accepted as-is, and every submitted payment
// eventually succeeds: there is no decline branch, because inventing gateway
// semantics is out of scope for the simulation.
package payment

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sabores-de-africa/sabores/internal/models"
)

// Delays mirror the original checkout modal: two seconds of "processing",
// then a second and a half showing the success screen.
const (
	DefaultProcessingDelay = 2 * time.Second
	DefaultSuccessDelay    = 1500 * time.Millisecond
)

// Receipt records a completed simulated payment.
type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	RecipeID      string    `json:"recipe_id"`
	Amount        float64   `json:"amount"`
	PaidAt        time.Time `json:"paid_at"`
}

// Validate checks that every checkout field is present. Nothing more: any
// non-empty values are accepted — no Luhn check, no expiry check.
func Validate(info models.PaymentInfo) error {
	return validation.ValidateStruct(&info,
		validation.Field(&info.Holder, validation.Required),
		validation.Field(&info.CardNumber, validation.Required),
		validation.Field(&info.Expiry, validation.Required),
		validation.Field(&info.CVV, validation.Required),
	)
}

// Simulator stands in for a payment gateway.
type Simulator struct {
	ProcessingDelay time.Duration
	SuccessDelay    time.Duration
}

// NewSimulator returns a simulator with the default delays.
func NewSimulator() *Simulator {
	return &Simulator{
		ProcessingDelay: DefaultProcessingDelay,
		SuccessDelay:    DefaultSuccessDelay,
	}
}

// Process validates the form, waits out the processing delay, and returns
// the receipt. The only failure modes are an incomplete form and context
// cancellation.
func (s *Simulator) Process(ctx context.Context, recipe models.RecipeSummary, info models.PaymentInfo) (*Receipt, error) {
	if err := Validate(info); err != nil {
		return nil, fmt.Errorf("invalid payment form: %w", err)
	}

	if err := wait(ctx, s.ProcessingDelay); err != nil {
		return nil, err
	}

	return &Receipt{
		TransactionID: uuid.NewString(),
		RecipeID:      recipe.ID,
		Amount:        recipe.Price,
		PaidAt:        time.Now(),
	}, nil
}

// Settle waits out the post-success confirmation delay.
func (s *Simulator) Settle(ctx context.Context) error {
	return wait(ctx, s.SuccessDelay)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
