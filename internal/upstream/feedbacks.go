package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// Feedbacks lists and resolves diner feedback.
type Feedbacks struct {
	api *gateway.Client
}

func NewFeedbacks(api *gateway.Client) *Feedbacks {
	return &Feedbacks{api: api}
}

func (f *Feedbacks) List(ctx context.Context) ([]domain.Feedback, error) {
	var feedbacks []domain.Feedback
	err := f.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/feedbacks/all",
		Out:    &feedbacks,
	})
	return feedbacks, err
}

func (f *Feedbacks) Pending(ctx context.Context) ([]domain.Feedback, error) {
	var feedbacks []domain.Feedback
	err := f.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/api/feedbacks/pending",
		Out:    &feedbacks,
	})
	return feedbacks, err
}

func (f *Feedbacks) Resolve(ctx context.Context, id int64, response string) (*domain.Feedback, error) {
	var feedback domain.Feedback
	err := f.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/feedbacks/%d/resolve", id),
		Query:  url.Values{"response": {response}},
		Out:    &feedback,
	})
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
