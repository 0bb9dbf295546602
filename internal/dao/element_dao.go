package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"litigator/internal/model"
)

type ElementDao interface {
	CreateCause(ctx context.Context, cause *model.CauseOfAction) error
	GetCauseByName(ctx context.Context, name string) (*model.CauseOfAction, error)
	ListCauses(ctx context.Context) ([]*model.CauseOfAction, error)
	ListCausesByIDs(ctx context.Context, ids []uint) ([]*model.CauseOfAction, error)

	CreateElement(ctx context.Context, element *model.LegalElement) error
	GetElementByID(ctx context.Context, id uint) (*model.LegalElement, error)
	ListElements(ctx context.Context) ([]*model.LegalElement, error)
	ListElementsByCauseID(ctx context.Context, causeID uint) ([]*model.LegalElement, error)

	CreateFactLink(ctx context.Context, link *model.FactElementLink) error
	ListFactLinksByElementID(ctx context.Context, elementID uint) ([]*model.FactElementLink, error)
}

type elementDao struct {
	db *gorm.DB
}

func NewElementDao(db *gorm.DB) ElementDao { return &elementDao{db: db} }

func (d *elementDao) CreateCause(ctx context.Context, cause *model.CauseOfAction) error {
	if err := d.db.WithContext(ctx).Create(cause).Error; err != nil {
		return fmt.Errorf("failed to create cause of action: %w", err)
	}
	return nil
}

func (d *elementDao) GetCauseByName(ctx context.Context, name string) (*model.CauseOfAction, error) {
	var cause model.CauseOfAction
	if err := d.db.WithContext(ctx).Where("name = ?", name).First(&cause).Error; err != nil {
		return nil, err
	}
	return &cause, nil
}

func (d *elementDao) ListCauses(ctx context.Context) ([]*model.CauseOfAction, error) {
	var causes []*model.CauseOfAction
	if err := d.db.WithContext(ctx).Order("id ASC").Find(&causes).Error; err != nil {
		return nil, fmt.Errorf("failed to list causes: %w", err)
	}
	return causes, nil
}

func (d *elementDao) ListCausesByIDs(ctx context.Context, ids []uint) ([]*model.CauseOfAction, error) {
	var causes []*model.CauseOfAction
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&causes).Error; err != nil {
		return nil, fmt.Errorf("failed to list causes: %w", err)
	}
	return causes, nil
}

func (d *elementDao) CreateElement(ctx context.Context, element *model.LegalElement) error {
	if err := d.db.WithContext(ctx).Create(element).Error; err != nil {
		return fmt.Errorf("failed to create legal element: %w", err)
	}
	return nil
}

func (d *elementDao) GetElementByID(ctx context.Context, id uint) (*model.LegalElement, error) {
	var element model.LegalElement
	if err := d.db.WithContext(ctx).First(&element, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get legal element: %w", err)
	}
	return &element, nil
}

func (d *elementDao) ListElements(ctx context.Context) ([]*model.LegalElement, error) {
	var elements []*model.LegalElement
	if err := d.db.WithContext(ctx).Order("cause_id ASC, id ASC").Find(&elements).Error; err != nil {
		return nil, fmt.Errorf("failed to list legal elements: %w", err)
	}
	return elements, nil
}

func (d *elementDao) ListElementsByCauseID(ctx context.Context, causeID uint) ([]*model.LegalElement, error) {
	var elements []*model.LegalElement
	if err := d.db.WithContext(ctx).Where("cause_id = ?", causeID).Order("id ASC").Find(&elements).Error; err != nil {
		return nil, fmt.Errorf("failed to list legal elements: %w", err)
	}
	return elements, nil
}

func (d *elementDao) CreateFactLink(ctx context.Context, link *model.FactElementLink) error {
	if err := d.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("failed to create fact element link: %w", err)
	}
	return nil
}

func (d *elementDao) ListFactLinksByElementID(ctx context.Context, elementID uint) ([]*model.FactElementLink, error) {
	var links []*model.FactElementLink
	if err := d.db.WithContext(ctx).Where("element_id = ?", elementID).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list fact element links: %w", err)
	}
	return links, nil
}
