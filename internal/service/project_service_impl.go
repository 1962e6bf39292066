package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kkurihara/planboard/internal/db"
	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork) ProjectService {
	return &projectService{projects: projects, uow: uow}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txNodes := repository.NewSQLiteNodeRepo(tx)

		if err := txProjects.Create(ctx, p); err != nil {
			return err
		}

		// Every project owns one synthetic root that anchors the rollup.
		root := &domain.WbsNode{
			ID:        uuid.New().String(),
			ProjectID: p.ID,
			Level:     domain.LevelRoot,
			Title:     p.Name,
			Status:    domain.StatusNotStarted,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return txNodes.Create(ctx, root)
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
