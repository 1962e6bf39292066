package domain

import "time"

// WbsNode is one work item in the hierarchical breakdown. Internal nodes
// aggregate their children; leaves are directly progress-tracked.
type WbsNode struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	// ParentID is nil only for the synthetic project root.
	ParentID   *string `json:"parentId"`
	Level      Level   `json:"level"`
	OrderIndex int     `json:"orderIndex"`
	Title      string  `json:"title"`
	// Weight is the node's relative contribution to its parent's rollup.
	// nil means unset; the rollup falls back to an equal split when every
	// sibling weight is unset or zero.
	Weight *float64 `json:"weight"`
	// Progress is 0..100. It is authoritative only on leaves; on internal
	// nodes it always holds the weight-normalized average of the children.
	Progress        int        `json:"progress"`
	Status          NodeStatus `json:"status"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	ActualStartDate *time.Time `json:"actualStartDate"`
	ActualEndDate   *time.Time `json:"actualEndDate"`
	Assignees       []string   `json:"assignees"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// IsRoot reports whether the node is the synthetic project root.
func (n *WbsNode) IsRoot() bool {
	return n.ParentID == nil
}
