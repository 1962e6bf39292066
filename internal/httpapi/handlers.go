package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kkurihara/planboard/internal/domain"
)

const dateLayout = "2006-01-02"

type handlers struct {
	app *App
}

// parseDate parses an optional yyyy-mm-dd field into a *time.Time.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}

type projectRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *handlers) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	project := &domain.Project{Name: req.Name, StartDate: start, EndDate: end}
	if err := h.app.Projects.Create(c.Request.Context(), project); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": project})
}

func (h *handlers) listProjects(c *gin.Context) {
	projects, err := h.app.Projects.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": projects})
}

func (h *handlers) getProject(c *gin.Context) {
	project, err := h.app.Projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": project})
}

func (h *handlers) updateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	project, err := h.app.Projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	project.Name = req.Name
	if project.StartDate, err = parseDate(req.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if project.EndDate, err = parseDate(req.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.app.Projects.Update(c.Request.Context(), project); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": project})
}

func (h *handlers) deleteProject(c *gin.Context) {
	if err := h.app.Projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) getTree(c *gin.Context) {
	nodes, err := h.app.Nodes.Tree(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": nodes})
}

func (h *handlers) getStats(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("invalid asOf date %q", raw)})
			return
		}
		asOf = parsed
	}
	stats, err := h.app.Stats.ComputeStats(c.Request.Context(), c.Param("id"), asOf)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (h *handlers) getAggregateCounts(c *gin.Context) {
	counts, err := h.app.Progress.AggregateCounts(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
}

type allocateRequest struct {
	Prefix string `json:"prefix" binding:"required"`
	Count  int    `json:"count"`
	Width  int    `json:"width"`
}

func (h *handlers) allocateCodes(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	codes, err := h.app.Allocator.Allocate(c.Request.Context(), c.Param("id"), req.Prefix, req.Count, req.Width)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": codes})
}

type holidayRequest struct {
	Date    string `json:"date" binding:"required"`
	EndDate string `json:"endDate"`
	Name    string `json:"name"`
	Global  bool   `json:"global"`
}

func (h *handlers) createHoliday(c *gin.Context) {
	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("invalid date %q", req.Date)})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	holiday := &domain.Holiday{Date: date, EndDate: end, Name: req.Name}
	if !req.Global {
		projectID := c.Param("id")
		holiday.ProjectID = &projectID
	}
	if err := h.app.Holidays.Create(c.Request.Context(), holiday); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": holiday})
}

func (h *handlers) listHolidays(c *gin.Context) {
	holidays, err := h.app.Holidays.ListForProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": holidays})
}

func (h *handlers) deleteHoliday(c *gin.Context) {
	if err := h.app.Holidays.Delete(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type nodeRequest struct {
	Title           string   `json:"title" binding:"required"`
	Weight          *float64 `json:"weight"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	ActualStartDate string   `json:"actualStartDate"`
	ActualEndDate   string   `json:"actualEndDate"`
	Assignees       []string `json:"assignees"`
}

func (req *nodeRequest) apply(n *domain.WbsNode) error {
	var err error
	n.Title = req.Title
	n.Weight = req.Weight
	n.Assignees = req.Assignees
	if n.StartDate, err = parseDate(req.StartDate); err != nil {
		return err
	}
	if n.EndDate, err = parseDate(req.EndDate); err != nil {
		return err
	}
	if n.ActualStartDate, err = parseDate(req.ActualStartDate); err != nil {
		return err
	}
	if n.ActualEndDate, err = parseDate(req.ActualEndDate); err != nil {
		return err
	}
	return nil
}

func (h *handlers) createNode(c *gin.Context) {
	var req nodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	var node domain.WbsNode
	if err := req.apply(&node); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.app.Nodes.Create(c.Request.Context(), c.Param("id"), &node); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": node})
}

func (h *handlers) getNode(c *gin.Context) {
	node, err := h.app.Nodes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": node})
}

func (h *handlers) listChildren(c *gin.Context) {
	children, err := h.app.Nodes.ListChildren(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": children})
}

func (h *handlers) updateNode(c *gin.Context) {
	var req nodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	node := domain.WbsNode{ID: c.Param("id")}
	if err := req.apply(&node); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.app.Nodes.Update(c.Request.Context(), &node); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) deleteNode(c *gin.Context) {
	if err := h.app.Nodes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type progressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

func (h *handlers) setProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	chain, err := h.app.Progress.SetLeafProgress(c.Request.Context(), c.Param("id"), *req.Progress)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": chain})
}

type levelRequest struct {
	Direction domain.LevelDirection `json:"direction" binding:"required"`
}

func (h *handlers) changeLevel(c *gin.Context) {
	var req levelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	result, err := h.app.Tree.ChangeLevel(c.Request.Context(), c.Param("id"), req.Direction)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
