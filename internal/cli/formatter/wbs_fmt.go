package formatter

import (
	"fmt"
	"time"

	"github.com/kkurihara/planboard/internal/domain"
)

// FormatProjectList renders projects as an aligned table.
func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			formatDate(p.StartDate),
			formatDate(p.EndDate),
		})
	}
	return RenderTable([]string{"ID", "NAME", "START", "END"}, rows)
}

// FormatWbsTree renders a full project tree depth-first. Nodes arrive in
// any order; children are grouped under their parent by order index.
func FormatWbsTree(nodes []*domain.WbsNode) string {
	children := make(map[string][]*domain.WbsNode)
	var root *domain.WbsNode
	for _, n := range nodes {
		if n.IsRoot() {
			root = n
			continue
		}
		children[*n.ParentID] = append(children[*n.ParentID], n)
	}
	if root == nil {
		return ""
	}

	items := []TreeItem{{
		Title:  root.Title,
		Level:  0,
		Status: string(root.Status),
		Detail: ProgressBar(root.Progress),
	}}

	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		siblings := children[parentID]
		for i, n := range siblings {
			items = append(items, TreeItem{
				Title:  n.Title,
				Level:  depth,
				IsLast: i == len(siblings)-1,
				Status: string(n.Status),
				Detail: ProgressBar(n.Progress),
			})
			walk(n.ID, depth+1)
		}
	}
	walk(root.ID, 1)

	return RenderTree(items)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatNode renders one node's full detail block.
func FormatNode(n *domain.WbsNode) string {
	weight := "-"
	if n.Weight != nil {
		weight = fmt.Sprintf("%.2f", *n.Weight)
	}
	return fmt.Sprintf(
		"%s\nLevel:    L%d\nStatus:   %s\nProgress: %s\nWeight:   %s\nPlanned:  %s .. %s\nActual:   %s .. %s\n",
		n.Title, n.Level, n.Status, ProgressBar(n.Progress), weight,
		formatDate(n.StartDate), formatDate(n.EndDate),
		formatDate(n.ActualStartDate), formatDate(n.ActualEndDate))
}
