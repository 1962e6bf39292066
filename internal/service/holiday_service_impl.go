package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/repository"
)

type holidayService struct {
	holidays repository.HolidayRepo
}

func NewHolidayService(holidays repository.HolidayRepo) HolidayService {
	return &holidayService{holidays: holidays}
}

func (s *holidayService) Create(ctx context.Context, h *domain.Holiday) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	h.CreatedAt = time.Now().UTC()
	return s.holidays.Create(ctx, h)
}

func (s *holidayService) ListForProject(ctx context.Context, projectID string) ([]*domain.Holiday, error) {
	return s.holidays.ListForProject(ctx, projectID)
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	return s.holidays.Delete(ctx, id)
}
