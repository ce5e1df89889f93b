package checkout

import (
	"context"
	"fmt"
	"strings"
)

// PaymentDetails is the raw payment form input.
type PaymentDetails struct {
	FullName   string
	CardNumber string
	Expiry     string
	CVV        string
}

// PaymentIntake is the payment boundary. Real processing is out of
// scope; implementations only report whether the intake succeeded.
type PaymentIntake interface {
	Authorize(ctx context.Context, details PaymentDetails) error
}

// FormIntake validates that every payment field is present and
// accepts the intake. It performs no charge.
type FormIntake struct{}

func (FormIntake) Authorize(_ context.Context, details PaymentDetails) error {
	fields := map[string]string{
		"full_name":   details.FullName,
		"card_number": details.CardNumber,
		"expiry":      details.Expiry,
		"cvv":         details.CVV,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing %s", ErrValidation, name)
		}
	}
	return nil
}
