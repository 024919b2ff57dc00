package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evsys/event-scheduling-api/internal/domain"
)

// AuditNotifier receives structured audit records after successful state
// transitions. Implementations must never influence the outcome of the
// operation being audited.
type AuditNotifier interface {
	Notify(ctx context.Context, record domain.AuditRecord)
}

type AuditRepository interface {
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	FindByActorID(ctx context.Context, actorID uint) ([]domain.AuditRecord, error)
}

type AuditService struct {
	repo AuditRepository
}

func NewAuditService(repo AuditRepository) *AuditService {
	return &AuditService{
		repo: repo,
	}
}

// Notify persists the record. Failures are logged and swallowed: an audit
// write must not fail a booking or event operation that already committed.
func (s *AuditService) Notify(ctx context.Context, record domain.AuditRecord) {
	if record.RecordID == uuid.Nil {
		record.RecordID = uuid.New()
	}

	if _, err := s.repo.Create(ctx, record); err != nil {
		zap.L().Error("failed to write audit record",
			zap.String("action", string(record.Action)),
			zap.String("entity_type", string(record.EntityType)),
			zap.Uint("entity_id", record.EntityID),
			zap.Error(err),
		)
	}
}

func (s *AuditService) GetHistory(ctx context.Context, actorID uint) ([]domain.AuditRecord, error) {
	records, err := s.repo.FindByActorID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByActorID -> %w", err)
	}

	return records, nil
}
