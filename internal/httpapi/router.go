package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kkurihara/planboard/internal/service"
)

// App holds references to all service interfaces used by HTTP handlers.
type App struct {
	Projects  service.ProjectService
	Nodes     service.NodeService
	Progress  service.ProgressService
	Tree      service.TreeService
	Stats     service.StatsService
	Allocator service.AllocatorService
	Holidays  service.HolidayService
}

// NewRouter builds the gin engine with logging, recovery, and CORS
// middleware and registers all API routes.
func NewRouter(app *App, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	h := &handlers{app: app}

	api := router.Group("/api")
	{
		projects := api.Group("/projects")
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
		projects.GET("/:id/tree", h.getTree)
		projects.GET("/:id/stats", h.getStats)
		projects.GET("/:id/aggregate", h.getAggregateCounts)
		projects.POST("/:id/codes", h.allocateCodes)
		projects.GET("/:id/holidays", h.listHolidays)
		projects.POST("/:id/holidays", h.createHoliday)

		nodes := api.Group("/nodes")
		nodes.POST("/:id/children", h.createNode)
		nodes.GET("/:id", h.getNode)
		nodes.GET("/:id/children", h.listChildren)
		nodes.PUT("/:id", h.updateNode)
		nodes.DELETE("/:id", h.deleteNode)
		nodes.PUT("/:id/progress", h.setProgress)
		nodes.POST("/:id/level", h.changeLevel)

		api.DELETE("/holidays/:id", h.deleteHoliday)
	}

	return router
}
