package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRecord struct {
	ID       uint      `gorm:"primaryKey"`
	RecordID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	ActorID    uint   `gorm:"not null;index"`
	Action     string `gorm:"not null"`
	EntityType string `gorm:"not null;index"`
	EntityID   uint   `gorm:"not null;index"`
	Details    string `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;index"`
}

type AuditDAO struct {
	db *gorm.DB
}

func NewAuditDAO(db *gorm.DB) *AuditDAO {
	return &AuditDAO{
		db: db,
	}
}

func (d *AuditDAO) Insert(ctx context.Context, record AuditRecord) (AuditRecord, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		return AuditRecord{}, result.Error
	}

	return record, nil
}

func (d *AuditDAO) FindByActorID(ctx context.Context, actorID uint) ([]AuditRecord, error) {
	var records []AuditRecord

	result := d.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}
