// Package history keeps completed diagnoses, newest first, up to a fixed limit.
//
// Error contract for every store:
//   - sentinel.ErrNotFound (wrapped) when the requested entry does not exist
//   - wrapped infrastructure errors for backend failures
package history

import (
	"context"

	"dirok/internal/inference/models"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 50

// Store is implemented by the in-memory and Redis backends.
type Store interface {
	Save(ctx context.Context, rec *models.Record) error
	FindByID(ctx context.Context, id models.DiagnosisID) (*models.Record, error)
	List(ctx context.Context) ([]*models.Record, error)
	Delete(ctx context.Context, id models.DiagnosisID) error
	Clear(ctx context.Context) error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
