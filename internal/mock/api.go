package mock

import (
	"context"
	"time"

	apperrors "github.com/dtg01100/video-browser/internal/errors"
)

// DefaultLatency is the simulated network delay of every request.
const DefaultLatency = 500 * time.Millisecond

// Options carries the optional request payload.
type Options struct {
	Data map[string]any
}

// Envelope is the response shape of the simulated API.
type Envelope struct {
	Success bool           `json:"success" yaml:"success"`
	Data    map[string]any `json:"data" yaml:"data"`
	Message string         `json:"message" yaml:"message"`
}

// API simulates a backend that always succeeds after a fixed delay.
type API struct {
	Latency time.Duration
}

// NewAPI returns an API with the default latency.
func NewAPI() *API {
	return &API{Latency: DefaultLatency}
}

// Request waits for the configured latency and echoes opts.Data back in a
// success envelope. The only failure is ctx ending first.
func (a *API) Request(ctx context.Context, url string, opts Options) (Envelope, error) {
	timer := time.NewTimer(a.Latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err := apperrors.New(apperrors.ErrRequestCancelled, "Request to %s cancelled", url)
		err.Cause = ctx.Err()
		return Envelope{}, err
	case <-timer.C:
	}

	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}
	return Envelope{
		Success: true,
		Data:    data,
		Message: "Request succeeded",
	}, nil
}
