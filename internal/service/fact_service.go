package service

import (
	"context"
	"fmt"
	"log"

	"github.com/bytedance/sonic"

	"litigator/internal/dao"
	"litigator/internal/model"
)

type FactService interface {
	Create(ctx context.Context, req *model.CreateFactRequest) (*model.FactResponse, error)
	Update(ctx context.Context, id uint, req *model.UpdateFactRequest) (*model.FactResponse, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.FactResponse, error)
	List(ctx context.Context) ([]*model.FactResponse, error)
	LinkCauses(ctx context.Context, factID uint, causeIDs []uint) (*model.LinkCausesResponse, error)
}

type factService struct {
	factDao dao.FactDao
}

func NewFactService(factDao dao.FactDao) FactService {
	return &factService{factDao: factDao}
}

func (s *factService) Create(ctx context.Context, req *model.CreateFactRequest) (*model.FactResponse, error) {
	fact := &model.Fact{
		Text:   req.Text,
		Date:   req.Date,
		Para:   req.Para,
		Source: req.Source,
		Tags:   encodeTags(req.Tags),
	}
	if err := s.factDao.Create(ctx, fact); err != nil {
		return nil, err
	}
	return toFactResponse(fact), nil
}

func (s *factService) Update(ctx context.Context, id uint, req *model.UpdateFactRequest) (*model.FactResponse, error) {
	fact, err := s.factDao.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != "" {
		fact.Text = req.Text
	}
	if req.Date != "" {
		fact.Date = req.Date
	}
	if req.Para != "" {
		fact.Para = req.Para
	}
	if req.Source != "" {
		fact.Source = req.Source
	}
	if req.Tags != nil {
		fact.Tags = encodeTags(req.Tags)
	}

	if err := s.factDao.Update(ctx, fact); err != nil {
		return nil, err
	}
	return toFactResponse(fact), nil
}

func (s *factService) Delete(ctx context.Context, id uint) error {
	return s.factDao.Delete(ctx, id)
}

func (s *factService) Get(ctx context.Context, id uint) (*model.FactResponse, error) {
	fact, err := s.factDao.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFactResponse(fact), nil
}

func (s *factService) List(ctx context.Context) ([]*model.FactResponse, error) {
	facts, err := s.factDao.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.FactResponse, 0, len(facts))
	for _, fact := range facts {
		out = append(out, toFactResponse(fact))
	}
	return out, nil
}

func (s *factService) LinkCauses(ctx context.Context, factID uint, causeIDs []uint) (*model.LinkCausesResponse, error) {
	if _, err := s.factDao.GetByID(ctx, factID); err != nil {
		return nil, fmt.Errorf("fact not found: %w", err)
	}
	if err := s.factDao.LinkCauses(ctx, factID, causeIDs); err != nil {
		return nil, err
	}
	return &model.LinkCausesResponse{
		Status:   "linked",
		FactID:   factID,
		CauseIDs: causeIDs,
	}, nil
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	out, err := sonic.MarshalString(tags)
	if err != nil {
		return "[]"
	}
	return out
}

func decodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := sonic.UnmarshalString(raw, &tags); err != nil {
		log.Printf("[Fact] bad tags payload: %v", err)
		return []string{}
	}
	return tags
}

func toFactResponse(fact *model.Fact) *model.FactResponse {
	return &model.FactResponse{
		ID:        fact.ID,
		Text:      fact.Text,
		Date:      fact.Date,
		Para:      fact.Para,
		Source:    fact.Source,
		Tags:      decodeTags(fact.Tags),
		CreatedAt: fact.CreatedAt,
		UpdatedAt: fact.UpdatedAt,
	}
}
