package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/kkurihara/planboard/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithSchedule(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestRootNode builds the synthetic root node for a project.
func NewTestRootNode(p *domain.Project) *domain.WbsNode {
	now := time.Now().UTC()
	return &domain.WbsNode{
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
}

// WbsNode options
type NodeOption func(*domain.WbsNode)

func WithWeight(w float64) NodeOption {
	return func(n *domain.WbsNode) {
		n.Weight = &w
	}
}

func WithProgress(p int, s domain.NodeStatus) NodeOption {
	return func(n *domain.WbsNode) {
		n.Progress = p
		n.Status = s
	}
}

func WithOrderIndex(i int) NodeOption {
	return func(n *domain.WbsNode) {
		n.OrderIndex = i
	}
}

func WithNodeDates(start, end time.Time) NodeOption {
	return func(n *domain.WbsNode) {
		n.StartDate = &start
		n.EndDate = &end
	}
}

func WithAssignees(names ...string) NodeOption {
	return func(n *domain.WbsNode) {
		n.Assignees = names
	}
}

// NewTestNode builds a node under parent with the parent's level plus one.
func NewTestNode(parent *domain.WbsNode, title string, opts ...NodeOption) *domain.WbsNode {
	now := time.Now().UTC()
	parentID := parent.ID
	n := &domain.WbsNode{
		ID:        uuid.New().String(),
		ProjectID: parent.ProjectID,
		ParentID:  &parentID,
		Level:     parent.Level + 1,
		Title:     title,
		Status:    domain.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Holiday options
type HolidayOption func(*domain.Holiday)

func WithHolidayRange(end time.Time) HolidayOption {
	return func(h *domain.Holiday) {
		h.EndDate = &end
	}
}

func WithGlobalScope() HolidayOption {
	return func(h *domain.Holiday) {
		h.ProjectID = nil
	}
}

func NewTestHoliday(projectID string, date time.Time, name string, opts ...HolidayOption) *domain.Holiday {
	h := &domain.Holiday{
		ID:        uuid.New().String(),
		ProjectID: &projectID,
		Date:      date,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
