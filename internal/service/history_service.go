package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"litigator/internal/dao/history"
	"litigator/internal/model"
)

// HistoryService manages conversations and their append-only message log.
type HistoryService interface {
	CreateConversation(ctx context.Context, userID uint, title string) (*model.Conversation, error)
	GetConversation(ctx context.Context, userID uint, convID string) (*model.Conversation, error)
	PageConversations(ctx context.Context, userID uint, page, size int) ([]*model.Conversation, int64, error)
	DeleteConversation(ctx context.Context, userID uint, convID string) error
	ArchiveConversation(ctx context.Context, userID uint, convID string) error
	PinConversation(ctx context.Context, userID uint, convID string) error

	AppendTurn(ctx context.Context, userID uint, convID, role, content string) (*model.Message, error)
	ListMessages(ctx context.Context, userID uint, convID string) ([]*model.Message, error)
}

type historyService struct {
	convDao history.ConvDao
	msgDao  history.MsgDao
}

func NewHistoryService(convDao history.ConvDao, msgDao history.MsgDao) HistoryService {
	return &historyService{convDao: convDao, msgDao: msgDao}
}

func (s *historyService) CreateConversation(ctx context.Context, userID uint, title string) (*model.Conversation, error) {
	conv := &model.Conversation{
		ConvID: uuid.NewString(),
		UserID: userID,
		Title:  title,
	}
	if err := s.convDao.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// owned verifies the conversation belongs to the caller.
func (s *historyService) owned(ctx context.Context, userID uint, convID string) (*model.Conversation, error) {
	conv, err := s.convDao.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("conversation %s does not belong to user %d", convID, userID)
	}
	return conv, nil
}

func (s *historyService) GetConversation(ctx context.Context, userID uint, convID string) (*model.Conversation, error) {
	return s.owned(ctx, userID, convID)
}

func (s *historyService) PageConversations(ctx context.Context, userID uint, page, size int) ([]*model.Conversation, int64, error) {
	return s.convDao.Page(ctx, userID, page, size)
}

func (s *historyService) DeleteConversation(ctx context.Context, userID uint, convID string) error {
	if _, err := s.owned(ctx, userID, convID); err != nil {
		return err
	}
	return s.convDao.Delete(ctx, convID)
}

func (s *historyService) ArchiveConversation(ctx context.Context, userID uint, convID string) error {
	if _, err := s.owned(ctx, userID, convID); err != nil {
		return err
	}
	return s.convDao.Archive(ctx, convID)
}

func (s *historyService) PinConversation(ctx context.Context, userID uint, convID string) error {
	if _, err := s.owned(ctx, userID, convID); err != nil {
		return err
	}
	return s.convDao.Pin(ctx, convID)
}

// AppendTurn writes one message at the end of the conversation, creating the
// conversation on first use.
func (s *historyService) AppendTurn(ctx context.Context, userID uint, convID, role, content string) (*model.Message, error) {
	conv := &model.Conversation{ConvID: convID, UserID: userID}
	if err := s.convDao.FirstOrCreate(ctx, conv); err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("conversation %s does not belong to user %d", convID, userID)
	}

	msg := &model.Message{
		ConvID:   convID,
		Role:     role,
		Content:  content,
		OrderSeq: time.Now().UnixNano(),
	}
	if err := s.msgDao.Create(ctx, msg); err != nil {
		return nil, err
	}

	conv.UpdatedAt = time.Now().Unix()
	if err := s.convDao.Update(ctx, conv); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *historyService) ListMessages(ctx context.Context, userID uint, convID string) ([]*model.Message, error) {
	if _, err := s.owned(ctx, userID, convID); err != nil {
		return nil, err
	}
	return s.msgDao.ListByConvID(ctx, convID)
}
