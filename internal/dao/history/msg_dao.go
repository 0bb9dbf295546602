package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"litigator/internal/model"
)

// MsgDao is append-only: messages are created and listed, never rewritten.
type MsgDao interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByConvID(ctx context.Context, convID string) ([]*model.Message, error)
	List(ctx context.Context, convID string, offset, limit int) ([]*model.Message, int64, error)
}

type msgDao struct {
	db *gorm.DB
}

func NewMsgDao(db *gorm.DB) MsgDao {
	return &msgDao{db: db}
}

func (d *msgDao) Create(ctx context.Context, msg *model.Message) error {
	if len(msg.MsgID) == 0 {
		msg.MsgID = uuid.NewString()
	}
	if err := d.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (d *msgDao) ListByConvID(ctx context.Context, convID string) ([]*model.Message, error) {
	var msgs []*model.Message
	if err := d.db.WithContext(ctx).Where("conv_id = ?", convID).
		Order("order_seq ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (d *msgDao) List(ctx context.Context, convID string, offset, limit int) ([]*model.Message, int64, error) {
	var msgs []*model.Message
	var total int64
	db := d.db.WithContext(ctx).Model(&model.Message{}).Where("conv_id = ?", convID).
		Order("order_seq ASC, id ASC")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}
	if err := db.Offset(offset).Limit(limit).Find(&msgs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, total, nil
}
