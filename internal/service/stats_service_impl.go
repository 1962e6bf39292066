package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/wbs"
)

type statsService struct {
	projects repository.ProjectRepo
	nodes    repository.NodeRepo
	holidays repository.HolidayRepo
}

func NewStatsService(projects repository.ProjectRepo, nodes repository.NodeRepo, holidays repository.HolidayRepo) StatsService {
	return &statsService{projects: projects, nodes: nodes, holidays: holidays}
}

func (s *statsService) ComputeStats(ctx context.Context, projectID string, asOf time.Time) (*wbs.ScheduleStats, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasSchedule() {
		return nil, fmt.Errorf("project %s: %w", projectID, wbs.ErrNoSchedule)
	}

	entries, err := s.holidays.ListForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	holidays := wbs.ExpandHolidays(entries, *project.StartDate, *project.EndDate)

	root, err := s.nodes.GetRoot(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stats := wbs.ComputeScheduleStats(*project.StartDate, *project.EndDate, asOf, holidays, root.Progress)
	return &stats, nil
}
