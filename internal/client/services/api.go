// Package services contains the application services of the IT Controller
// client: one per view of the product (board, notes, vault, feed, inventory)
// plus authentication. Each service owns the store of its collection;
// services do not share state with one another.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/itcontroller/internal/client/gateway"
)

// API is the part of gateway.Gateway the services use.
type API interface {
	Do(ctx context.Context, method, path string, body any, header http.Header) (*gateway.Response, error)
	Public(ctx context.Context, method, path string, body any) (*gateway.Response, error)
	JSON(ctx context.Context, method, path string, in, out any) error
}

var ErrValidation = errors.New("validation failed")

// ValidationError is a local check that failed before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// send issues a call and folds a non-2xx answer into an error.
func send(ctx context.Context, api API, method, path string, body any) (*gateway.Response, error) {
	resp, err := api.Do(ctx, method, path, body, nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

func itemPath(collection string, id int64) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
