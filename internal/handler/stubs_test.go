package handler

import (
	"context"

	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/entity"
)

type recommenderStub struct {
	records []dto.RestaurantRecord
	err     error

	got dto.RecommendRequest
}

func (s *recommenderStub) Fetch(ctx context.Context, req dto.RecommendRequest) ([]dto.RestaurantRecord, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type queriesStub struct {
	recorded []entity.RecommendationQuery
	listed   []entity.RecommendationQuery
	err      error
}

func (s *queriesStub) Record(ctx context.Context, query entity.RecommendationQuery) error {
	if s.err != nil {
		return s.err
	}
	s.recorded = append(s.recorded, query)
	return nil
}

func (s *queriesStub) List(ctx context.Context, limit int) ([]entity.RecommendationQuery, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listed, nil
}
