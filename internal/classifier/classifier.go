package classifier

import "context"

// Result contains the top prediction returned by the hosted model.
type Result struct {
	Class      string
	Confidence float64
}

// Client exposes the subset of the hosted model used by the prediction flow.
type Client interface {
	Classify(ctx context.Context, imageBytes []byte) (*Result, error)
}
