package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// AnalysisRepository defines persistence operations for analysis records.
// History is append-only ordered by date descending, except feedback
// re-runs which update an existing record in place.
type AnalysisRepository interface {
	Create(ctx context.Context, record *entities.AnalysisRecord) error
	Update(ctx context.Context, record *entities.AnalysisRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisRecord, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*entities.AnalysisRecord, error)
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
}
