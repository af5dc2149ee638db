package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Biskuitttt/Suratt/internal/model"
)

// Transient marks a backend failure as model.ErrTransientFailure so callers
// can tell an outage from a missing document. Context errors pass through.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, model.ErrTransientFailure, err)
}
