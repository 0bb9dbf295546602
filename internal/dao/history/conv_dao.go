package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"litigator/internal/model"
)

type ConvDao interface {
	Create(ctx context.Context, conv *model.Conversation) error
	Update(ctx context.Context, conv *model.Conversation) error
	Delete(ctx context.Context, convID string) error
	GetByID(ctx context.Context, convID string) (*model.Conversation, error)
	FirstOrCreate(ctx context.Context, conv *model.Conversation) error
	Page(ctx context.Context, userID uint, page, size int) ([]*model.Conversation, int64, error)
	Archive(ctx context.Context, convID string) error
	Pin(ctx context.Context, convID string) error
}

type convDao struct {
	db *gorm.DB
}

func NewConvDao(db *gorm.DB) ConvDao {
	return &convDao{db: db}
}

func (d *convDao) Create(ctx context.Context, conv *model.Conversation) error {
	if err := d.db.WithContext(ctx).Create(conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (d *convDao) Update(ctx context.Context, conv *model.Conversation) error {
	if err := d.db.WithContext(ctx).Save(conv).Error; err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

func (d *convDao) Delete(ctx context.Context, convID string) error {
	if err := d.db.WithContext(ctx).Delete(&model.Conversation{}, "conv_id = ?", convID).Error; err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (d *convDao) GetByID(ctx context.Context, convID string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := d.db.WithContext(ctx).Where("conv_id = ?", convID).First(&conv).Error; err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

func (d *convDao) FirstOrCreate(ctx context.Context, conv *model.Conversation) error {
	if err := d.db.WithContext(ctx).Where("conv_id = ?", conv.ConvID).FirstOrCreate(conv).Error; err != nil {
		return fmt.Errorf("failed to get or create conversation: %w", err)
	}
	return nil
}

func (d *convDao) Page(ctx context.Context, userID uint, page, size int) ([]*model.Conversation, int64, error) {
	var convs []*model.Conversation
	var total int64

	db := d.db.WithContext(ctx).Model(&model.Conversation{}).Where("user_id = ?", userID).Order("updated_at DESC")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	err := db.Offset((page - 1) * size).Limit(size).Find(&convs).Error
	return convs, total, err
}

func (d *convDao) Archive(ctx context.Context, convID string) error {
	if err := d.db.WithContext(ctx).Model(&model.Conversation{}).Where("conv_id = ?", convID).Update("is_archived", true).Error; err != nil {
		return fmt.Errorf("failed to archive conversation: %w", err)
	}
	return nil
}

func (d *convDao) Pin(ctx context.Context, convID string) error {
	if err := d.db.WithContext(ctx).Model(&model.Conversation{}).Where("conv_id = ?", convID).Update("is_pinned", true).Error; err != nil {
		return fmt.Errorf("failed to pin conversation: %w", err)
	}
	return nil
}
