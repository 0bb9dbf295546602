package service

import (
	"context"
	"fmt"
	"strings"

	eino_model "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"litigator/internal/dao"
	"litigator/internal/model"
)

type ComplaintService interface {
	CreateSection(ctx context.Context, req *model.CreateComplaintSectionRequest) (*model.ComplaintSection, error)
	GetSection(ctx context.Context, id uint) (*model.ComplaintSection, error)
	ListSections(ctx context.Context) ([]*model.ComplaintSection, error)
	DraftSection(ctx context.Context, section string) (string, error)
}

type complaintService struct {
	complaintDao dao.ComplaintDao
	factDao      dao.FactDao
	llm          eino_model.BaseChatModel
}

func NewComplaintService(complaintDao dao.ComplaintDao, factDao dao.FactDao, llm eino_model.BaseChatModel) ComplaintService {
	return &complaintService{complaintDao: complaintDao, factDao: factDao, llm: llm}
}

func (s *complaintService) CreateSection(ctx context.Context, req *model.CreateComplaintSectionRequest) (*model.ComplaintSection, error) {
	section := &model.ComplaintSection{
		Section: req.Section,
		Content: req.Content,
	}
	if err := s.complaintDao.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *complaintService) GetSection(ctx context.Context, id uint) (*model.ComplaintSection, error) {
	return s.complaintDao.GetSectionByID(ctx, id)
}

func (s *complaintService) ListSections(ctx context.Context) ([]*model.ComplaintSection, error) {
	return s.complaintDao.ListSections(ctx)
}

const draftSectionPrompt = `You draft complaint sections for civil litigation. Write the requested section in numbered-paragraph pleading style, using only the facts provided. Do not invent facts.`

// DraftSection asks the model for a first draft of the named section based on
// the pleaded facts.
func (s *complaintService) DraftSection(ctx context.Context, section string) (string, error) {
	facts, err := s.factDao.List(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Section to draft: %s\n\nFacts:\n", section)
	for _, fact := range facts {
		fmt.Fprintf(&sb, "- (para %s) %s\n", fact.Para, fact.Text)
	}

	out, err := s.llm.Generate(ctx, []*schema.Message{
		schema.SystemMessage(draftSectionPrompt),
		schema.UserMessage(sb.String()),
	})
	if err != nil {
		return "", fmt.Errorf("drafting failed: %w", err)
	}
	return out.Content, nil
}
