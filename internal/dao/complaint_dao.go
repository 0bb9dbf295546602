package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"litigator/internal/model"
)

// ErrSectionExists signals a duplicate complaint section name.
var ErrSectionExists = errors.New("complaint section already exists")

type ComplaintDao interface {
	CreateSection(ctx context.Context, section *model.ComplaintSection) error
	GetSectionByID(ctx context.Context, id uint) (*model.ComplaintSection, error)
	ListSections(ctx context.Context) ([]*model.ComplaintSection, error)
}

type complaintDao struct {
	db *gorm.DB
}

func NewComplaintDao(db *gorm.DB) ComplaintDao { return &complaintDao{db: db} }

func (d *complaintDao) CreateSection(ctx context.Context, section *model.ComplaintSection) error {
	var existing model.ComplaintSection
	err := d.db.WithContext(ctx).Where("section = ?", section.Section).First(&existing).Error
	if err == nil {
		return ErrSectionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check section: %w", err)
	}
	if err := d.db.WithContext(ctx).Create(section).Error; err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

func (d *complaintDao) GetSectionByID(ctx context.Context, id uint) (*model.ComplaintSection, error) {
	var section model.ComplaintSection
	if err := d.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &section, nil
}

func (d *complaintDao) ListSections(ctx context.Context) ([]*model.ComplaintSection, error) {
	var sections []*model.ComplaintSection
	if err := d.db.WithContext(ctx).Order("id ASC").Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}
