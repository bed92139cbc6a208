package repository

import "context"

// ModelClient sends one prompt to the hosted generation model and returns
// the raw response text. The model id and decoding configuration are fixed
// at construction; the client performs no parsing or validation of the
// returned text. Failures are reported as entity.TransientServiceError or
// entity.FatalServiceError.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelID() string
}
