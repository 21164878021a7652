package services

import (
	"context"
	"fmt"

	"github.com/tunahan/uniplanner/internal/app/models"
)

// CatalogService exposes read-only views of the academic records.
type CatalogService interface {
	ListCourses(ctx context.Context, sel models.SemesterSelector) ([]models.Course, error)
	ListBatches(ctx context.Context) ([]models.Batch, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListSlots(ctx context.Context) ([]models.Slot, error)
}

type catalogServiceImpl struct {
	records RecordSource
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(records RecordSource) CatalogService {
	return &catalogServiceImpl{records: records}
}

func (s *catalogServiceImpl) ListCourses(ctx context.Context, sel models.SemesterSelector) ([]models.Course, error) {
	courses, err := s.records.ListCourses(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

func (s *catalogServiceImpl) ListBatches(ctx context.Context) ([]models.Batch, error) {
	batches, err := s.records.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving batches: %w", err)
	}
	return batches, nil
}

func (s *catalogServiceImpl) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.records.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving rooms: %w", err)
	}
	return rooms, nil
}

func (s *catalogServiceImpl) ListSlots(ctx context.Context) ([]models.Slot, error) {
	slots, err := s.records.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving slots: %w", err)
	}
	return slots, nil
}
