package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	eino_model "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"gorm.io/gorm"

	"litigator/internal/dao"
	"litigator/internal/model"
)

type ElementService interface {
	CreateElement(ctx context.Context, req *model.CreateElementRequest) (*model.LegalElement, error)
	ListCauses(ctx context.Context) ([]*model.CauseOfAction, error)
	ListElements(ctx context.Context, causeID uint) ([]*model.LegalElement, error)
	CompareFacts(ctx context.Context, req *model.CompareFactsRequest) ([]model.ElementMatch, error)
	Matrix(ctx context.Context) (*model.MatrixResponse, error)
}

type elementService struct {
	elementDao  dao.ElementDao
	factDao     dao.FactDao
	evidenceDao dao.EvidenceDao
	llm         eino_model.BaseChatModel
}

func NewElementService(elementDao dao.ElementDao, factDao dao.FactDao, evidenceDao dao.EvidenceDao, llm eino_model.BaseChatModel) ElementService {
	return &elementService{
		elementDao:  elementDao,
		factDao:     factDao,
		evidenceDao: evidenceDao,
		llm:         llm,
	}
}

// CreateElement creates the cause of action on first use, then the element
// under it.
func (s *elementService) CreateElement(ctx context.Context, req *model.CreateElementRequest) (*model.LegalElement, error) {
	cause, err := s.elementDao.GetCauseByName(ctx, req.Cause)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cause = &model.CauseOfAction{Name: req.Cause}
		if err := s.elementDao.CreateCause(ctx, cause); err != nil {
			return nil, err
		}
	}

	element := &model.LegalElement{
		CauseID:     cause.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.elementDao.CreateElement(ctx, element); err != nil {
		return nil, err
	}
	return element, nil
}

func (s *elementService) ListCauses(ctx context.Context) ([]*model.CauseOfAction, error) {
	return s.elementDao.ListCauses(ctx)
}

func (s *elementService) ListElements(ctx context.Context, causeID uint) ([]*model.LegalElement, error) {
	if causeID > 0 {
		return s.elementDao.ListElementsByCauseID(ctx, causeID)
	}
	return s.elementDao.ListElements(ctx)
}

const compareFactsPrompt = `You map case facts onto the legal elements they support. The causes of action and their elements are:

%s

Respond with a JSON array only, one entry per supported element, of the form [{"fact": string, "cause": string, "element": string}]. Use the exact fact, cause and element wording given. A fact that supports nothing appears in no entry.`

// CompareFacts asks the model which pleaded elements each fact supports.
func (s *elementService) CompareFacts(ctx context.Context, req *model.CompareFactsRequest) ([]model.ElementMatch, error) {
	catalog, err := s.elementCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for i, fact := range req.Facts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, fact)
	}

	out, err := s.llm.Generate(ctx, []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(compareFactsPrompt, catalog)),
		schema.UserMessage("Facts:\n" + sb.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("element comparison failed: %w", err)
	}

	matches, err := parseElementMatches(out.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comparison result: %w", err)
	}
	return matches, nil
}

func (s *elementService) elementCatalog(ctx context.Context) (string, error) {
	causes, err := s.elementDao.ListCauses(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cause := range causes {
		elements, err := s.elementDao.ListElementsByCauseID(ctx, cause.ID)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "- %s\n", cause.Name)
		for _, el := range elements {
			fmt.Fprintf(&sb, "  - %s: %s\n", el.Name, el.Description)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no causes of action defined")
	}
	return sb.String(), nil
}

func parseElementMatches(content string) ([]model.ElementMatch, error) {
	trimmed := strings.TrimSpace(content)
	if idx := strings.IndexByte(trimmed, '['); idx > 0 {
		trimmed = trimmed[idx:]
	}
	if idx := strings.LastIndexByte(trimmed, ']'); idx >= 0 {
		trimmed = trimmed[:idx+1]
	}

	var matches []model.ElementMatch
	if err := sonic.UnmarshalString(trimmed, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Matrix assembles the claim matrix: every cause, its elements, and the
// linked facts with their exhibits.
func (s *elementService) Matrix(ctx context.Context) (*model.MatrixResponse, error) {
	causes, err := s.elementDao.ListCauses(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.MatrixResponse{Claims: make([]model.MatrixEntry, 0, len(causes))}
	for _, cause := range causes {
		entry := model.MatrixEntry{Cause: cause.Name, CauseID: cause.ID}

		elements, err := s.elementDao.ListElementsByCauseID(ctx, cause.ID)
		if err != nil {
			return nil, err
		}
		for _, element := range elements {
			matrixElement := model.MatrixElement{Element: element.Name, ElementID: element.ID}

			links, err := s.elementDao.ListFactLinksByElementID(ctx, element.ID)
			if err != nil {
				return nil, err
			}
			for _, link := range links {
				fact, err := s.factDao.GetByID(ctx, link.FactID)
				if err != nil {
					continue // dangling link, fact deleted
				}
				matrixFact := model.MatrixFact{
					FactID:     fact.ID,
					Text:       fact.Text,
					Date:       fact.Date,
					Source:     fact.Source,
					Tags:       decodeTags(fact.Tags),
					Note:       link.Note,
					Confidence: link.Confidence,
				}
				exhibits, err := s.evidenceDao.ListByFactID(ctx, fact.ID)
				if err == nil {
					for _, exhibit := range exhibits {
						matrixFact.Exhibits = append(matrixFact.Exhibits, exhibit.Filename)
					}
				}
				matrixElement.Facts = append(matrixElement.Facts, matrixFact)
			}
			entry.Elements = append(entry.Elements, matrixElement)
		}
		resp.Claims = append(resp.Claims, entry)
	}
	return resp, nil
}
