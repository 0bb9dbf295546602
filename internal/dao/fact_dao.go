package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"litigator/internal/model"
)

type FactDao interface {
	Create(ctx context.Context, fact *model.Fact) error
	Update(ctx context.Context, fact *model.Fact) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Fact, error)
	List(ctx context.Context) ([]*model.Fact, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*model.Fact, error)

	LinkCauses(ctx context.Context, factID uint, causeIDs []uint) error
	ListCauseLinks(ctx context.Context, factID uint) ([]*model.FactCauseLink, error)
}

type factDao struct {
	db *gorm.DB
}

func NewFactDao(db *gorm.DB) FactDao { return &factDao{db: db} }

func (d *factDao) Create(ctx context.Context, fact *model.Fact) error {
	if err := d.db.WithContext(ctx).Create(fact).Error; err != nil {
		return fmt.Errorf("failed to create fact: %w", err)
	}
	return nil
}

func (d *factDao) Update(ctx context.Context, fact *model.Fact) error {
	if err := d.db.WithContext(ctx).Save(fact).Error; err != nil {
		return fmt.Errorf("failed to update fact: %w", err)
	}
	return nil
}

func (d *factDao) Delete(ctx context.Context, id uint) error {
	if err := d.db.WithContext(ctx).Delete(&model.Fact{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete fact: %w", err)
	}
	return nil
}

func (d *factDao) GetByID(ctx context.Context, id uint) (*model.Fact, error) {
	var fact model.Fact
	if err := d.db.WithContext(ctx).First(&fact, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get fact: %w", err)
	}
	return &fact, nil
}

func (d *factDao) List(ctx context.Context) ([]*model.Fact, error) {
	var facts []*model.Fact
	if err := d.db.WithContext(ctx).Order("id ASC").Find(&facts).Error; err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}
	return facts, nil
}

func (d *factDao) ListByIDs(ctx context.Context, ids []uint) ([]*model.Fact, error) {
	var facts []*model.Fact
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&facts).Error; err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}
	return facts, nil
}

// LinkCauses inserts missing fact/cause pairs, skipping ones already present.
func (d *factDao) LinkCauses(ctx context.Context, factID uint, causeIDs []uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, causeID := range causeIDs {
			link := model.FactCauseLink{FactID: factID, CauseID: causeID}
			if err := tx.Where(&link).FirstOrCreate(&link).Error; err != nil {
				return fmt.Errorf("failed to link fact %d to cause %d: %w", factID, causeID, err)
			}
		}
		return nil
	})
}

func (d *factDao) ListCauseLinks(ctx context.Context, factID uint) ([]*model.FactCauseLink, error) {
	var links []*model.FactCauseLink
	if err := d.db.WithContext(ctx).Where("fact_id = ?", factID).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list cause links: %w", err)
	}
	return links, nil
}
