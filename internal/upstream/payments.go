package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// Payments lists and settles subscription payments. Verification remarks and
// rejection reasons travel as query parameters; that is the backend's
// contract, not a body payload.
type Payments struct {
	api *gateway.Client
}

func NewPayments(api *gateway.Client) *Payments {
	return &Payments{api: api}
}

func (p *Payments) List(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := p.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/api/payments/all",
		Out:    &payments,
	})
	return payments, err
}

func (p *Payments) Pending(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := p.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/api/payments/pending",
		Out:    &payments,
	})
	return payments, err
}

func (p *Payments) Verify(ctx context.Context, id int64, remarks string) (*domain.Payment, error) {
	var payment domain.Payment
	err := p.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/payments/%d/verify", id),
		Query:  url.Values{"remarks": {remarks}},
		Out:    &payment,
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (p *Payments) Reject(ctx context.Context, id int64, reason string) (*domain.Payment, error) {
	var payment domain.Payment
	err := p.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/payments/%d/reject", id),
		Query:  url.Values{"reason": {reason}},
		Out:    &payment,
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
