package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository/dao"
)

type AuditDAO interface {
	Insert(ctx context.Context, record dao.AuditRecord) (dao.AuditRecord, error)
	FindByActorID(ctx context.Context, actorID uint) ([]dao.AuditRecord, error)
}

type AuditRepository struct {
	dao AuditDAO
}

func NewAuditRepository(dao AuditDAO) *AuditRepository {
	return &AuditRepository{
		dao: dao,
	}
}

func (r *AuditRepository) recordDaoToDomain(rec dao.AuditRecord) (domain.AuditRecord, error) {
	details := map[string]string{}
	if rec.Details != "" {
		if err := json.Unmarshal([]byte(rec.Details), &details); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("json.Unmarshal -> %w", err)
		}
	}

	return domain.AuditRecord{
		ID:         rec.ID,
		RecordID:   rec.RecordID,
		ActorID:    rec.ActorID,
		Action:     domain.AuditAction(rec.Action),
		EntityType: domain.AuditEntity(rec.EntityType),
		EntityID:   rec.EntityID,
		Details:    details,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

func (r *AuditRepository) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	details, err := json.Marshal(record.Details)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	created, err := r.dao.Insert(ctx, dao.AuditRecord{
		RecordID:   record.RecordID,
		ActorID:    record.ActorID,
		Action:     string(record.Action),
		EntityType: string(record.EntityType),
		EntityID:   record.EntityID,
		Details:    string(details),
	})
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.recordDaoToDomain(created)
}

func (r *AuditRepository) FindByActorID(ctx context.Context, actorID uint) ([]domain.AuditRecord, error) {
	records, err := r.dao.FindByActorID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByActorID -> %w", err)
	}

	result := make([]domain.AuditRecord, len(records))
	for i, rec := range records {
		mapped, err := r.recordDaoToDomain(rec)
		if err != nil {
			return nil, err
		}
		result[i] = mapped
	}

	return result, nil
}
