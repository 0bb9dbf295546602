package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"litigator/internal/model"
)

type EvidenceDao interface {
	Create(ctx context.Context, exhibit *model.Exhibit) error
	Update(ctx context.Context, exhibit *model.Exhibit) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Exhibit, error)
	List(ctx context.Context, page, size int) ([]*model.Exhibit, int64, error)
	ListByFactID(ctx context.Context, factID uint) ([]*model.Exhibit, error)
}

type evidenceDao struct {
	db *gorm.DB
}

func NewEvidenceDao(db *gorm.DB) EvidenceDao { return &evidenceDao{db: db} }

func (d *evidenceDao) Create(ctx context.Context, exhibit *model.Exhibit) error {
	if err := d.db.WithContext(ctx).Create(exhibit).Error; err != nil {
		return fmt.Errorf("failed to create exhibit: %w", err)
	}
	return nil
}

func (d *evidenceDao) Update(ctx context.Context, exhibit *model.Exhibit) error {
	if err := d.db.WithContext(ctx).Save(exhibit).Error; err != nil {
		return fmt.Errorf("failed to update exhibit: %w", err)
	}
	return nil
}

func (d *evidenceDao) Delete(ctx context.Context, id string) error {
	if err := d.db.WithContext(ctx).Delete(&model.Exhibit{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete exhibit: %w", err)
	}
	return nil
}

func (d *evidenceDao) GetByID(ctx context.Context, id string) (*model.Exhibit, error) {
	var exhibit model.Exhibit
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&exhibit).Error; err != nil {
		return nil, fmt.Errorf("failed to get exhibit: %w", err)
	}
	return &exhibit, nil
}

func (d *evidenceDao) List(ctx context.Context, page, size int) ([]*model.Exhibit, int64, error) {
	var exhibits []*model.Exhibit
	var total int64
	db := d.db.WithContext(ctx).Model(&model.Exhibit{}).Order("created_at DESC")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count exhibits: %w", err)
	}
	if err := db.Offset((page - 1) * size).Limit(size).Find(&exhibits).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list exhibits: %w", err)
	}
	return exhibits, total, nil
}

func (d *evidenceDao) ListByFactID(ctx context.Context, factID uint) ([]*model.Exhibit, error) {
	var exhibits []*model.Exhibit
	if err := d.db.WithContext(ctx).Where("fact_id = ?", factID).Find(&exhibits).Error; err != nil {
		return nil, fmt.Errorf("failed to list exhibits: %w", err)
	}
	return exhibits, nil
}
