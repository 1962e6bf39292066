package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/testutil"
)

// harness wires every service over one in-memory database.
type harness struct {
	db        *sql.DB
	nodes     repository.NodeRepo
	projects  ProjectService
	nodeSvc   NodeService
	progress  ProgressService
	tree      TreeService
	stats     StatsService
	allocator AllocatorService
	holidays  HolidayService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	projectRepo := repository.NewSQLiteProjectRepo(database)
	nodeRepo := repository.NewSQLiteNodeRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	counterRepo := repository.NewSQLiteCounterRepo(database)

	return &harness{
		db:        database,
		nodes:     nodeRepo,
		projects:  NewProjectService(projectRepo, uow),
		nodeSvc:   NewNodeService(nodeRepo, uow),
		progress:  NewProgressService(nodeRepo, uow),
		tree:      NewTreeService(uow),
		stats:     NewStatsService(projectRepo, nodeRepo, holidayRepo),
		allocator: NewAllocatorService(counterRepo),
		holidays:  NewHolidayService(holidayRepo),
	}
}

// newProject creates a project through the service and returns it with its
// synthetic root node.
func (h *harness) newProject(t *testing.T, name string, opts ...testutil.ProjectOption) (*domain.Project, *domain.WbsNode) {
	t.Helper()
	ctx := context.Background()

	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, h.projects.Create(ctx, p))

	root, err := h.nodes.GetRoot(ctx, p.ID)
	require.NoError(t, err)
	return p, root
}

// addNode creates a child through the node service.
func (h *harness) addNode(t *testing.T, parentID, title string, weight *float64) *domain.WbsNode {
	t.Helper()
	n := &domain.WbsNode{Title: title, Weight: weight}
	require.NoError(t, h.nodeSvc.Create(context.Background(), parentID, n))
	return n
}

func (h *harness) getNode(t *testing.T, id string) *domain.WbsNode {
	t.Helper()
	n, err := h.nodes.GetByID(context.Background(), id)
	require.NoError(t, err)
	return n
}

func ptr(f float64) *float64 { return &f }

func scheduleWindow() (time.Time, time.Time) {
	return time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
}
