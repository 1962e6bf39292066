package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/service"
	"github.com/kkurihara/planboard/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	projectRepo := repository.NewSQLiteProjectRepo(database)
	nodeRepo := repository.NewSQLiteNodeRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	counterRepo := repository.NewSQLiteCounterRepo(database)

	app := &App{
		Projects:  service.NewProjectService(projectRepo, uow),
		Nodes:     service.NewNodeService(nodeRepo, uow),
		Progress:  service.NewProgressService(nodeRepo, uow),
		Tree:      service.NewTreeService(uow),
		Stats:     service.NewStatsService(projectRepo, nodeRepo, holidayRepo),
		Allocator: service.NewAllocatorService(counterRepo),
		Holidays:  service.NewHolidayService(holidayRepo),
	}
	return NewRouter(app, zerolog.Nop())
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func createProject(t *testing.T, router *gin.Engine, body map[string]any) map[string]any {
	t.Helper()
	rec, env := do(t, router, http.MethodPost, "/api/projects", body)
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)

	var project map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &project))
	return project
}

func projectRoot(t *testing.T, router *gin.Engine, projectID string) map[string]any {
	t.Helper()
	rec, env := do(t, router, http.MethodGet, "/api/projects/"+projectID+"/tree", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &nodes))
	require.NotEmpty(t, nodes)
	return nodes[0]
}

func TestAPI_CreateProjectReturnsTreeWithRoot(t *testing.T) {
	router := newTestRouter(t)

	project := createProject(t, router, map[string]any{
		"name":      "Rollout",
		"startDate": "2025-03-03",
		"endDate":   "2025-03-14",
	})
	root := projectRoot(t, router, project["id"].(string))

	assert.Nil(t, root["parentId"])
	assert.Equal(t, float64(0), root["level"])
	assert.Equal(t, "Rollout", root["title"])
}

func TestAPI_ProgressRollsUpThroughChain(t *testing.T) {
	router := newTestRouter(t)

	project := createProject(t, router, map[string]any{"name": "Chain"})
	root := projectRoot(t, router, project["id"].(string))
	rootID := root["id"].(string)

	rec, env := do(t, router, http.MethodPost, "/api/nodes/"+rootID+"/children",
		map[string]any{"title": "Build"})
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	var node map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &node))
	leafID := node["id"].(string)

	rec, env = do(t, router, http.MethodPut, "/api/nodes/"+leafID+"/progress",
		map[string]any{"progress": 40})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)

	var chain map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &chain))
	leaf := chain["leaf"].(map[string]any)
	assert.Equal(t, float64(40), leaf["progress"])
	assert.Equal(t, "in_progress", leaf["status"])

	ancestors := chain["ancestors"].([]any)
	require.Len(t, ancestors, 1)
	assert.Equal(t, rootID, ancestors[0].(map[string]any)["nodeId"])
}

func TestAPI_ErrorStatusMapping(t *testing.T) {
	router := newTestRouter(t)

	project := createProject(t, router, map[string]any{"name": "Errors"})
	projectID := project["id"].(string)
	root := projectRoot(t, router, projectID)
	rootID := root["id"].(string)

	// Unknown node: 404.
	rec, _ := do(t, router, http.MethodPut, "/api/nodes/missing/progress",
		map[string]any{"progress": 10})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Progress outside 0-100: 400.
	rec, _ = do(t, router, http.MethodPut, "/api/nodes/"+rootID+"/progress",
		map[string]any{"progress": 150})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Progress on the synthetic root: 422.
	rec, _ = do(t, router, http.MethodPut, "/api/nodes/"+rootID+"/progress",
		map[string]any{"progress": 10})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Stats without a schedule: 422.
	rec, _ = do(t, router, http.MethodGet, "/api/projects/"+projectID+"/stats", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Unknown code prefix: 400.
	rec, _ = do(t, router, http.MethodPost, "/api/projects/"+projectID+"/codes",
		map[string]any{"prefix": "BUG"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_AllocateCodes(t *testing.T) {
	router := newTestRouter(t)

	project := createProject(t, router, map[string]any{"name": "Codes"})
	projectID := project["id"].(string)

	rec, env := do(t, router, http.MethodPost, "/api/projects/"+projectID+"/codes",
		map[string]any{"prefix": "ISS", "count": 3})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)

	var codes []string
	require.NoError(t, json.Unmarshal(env.Data, &codes))
	assert.Equal(t, []string{"ISS-001", "ISS-002", "ISS-003"}, codes)
}

func TestAPI_ChangeLevel(t *testing.T) {
	router := newTestRouter(t)

	project := createProject(t, router, map[string]any{"name": "Levels"})
	root := projectRoot(t, router, project["id"].(string))
	rootID := root["id"].(string)

	var ids []string
	for _, title := range []string{"A", "B"} {
		rec, env := do(t, router, http.MethodPost, "/api/nodes/"+rootID+"/children",
			map[string]any{"title": title})
		require.Equal(t, http.StatusCreated, rec.Code, env.Error)
		var node map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &node))
		ids = append(ids, node["id"].(string))
	}

	rec, env := do(t, router, http.MethodPost, "/api/nodes/"+ids[1]+"/level",
		map[string]any{"direction": "down"})
	require.Equal(t, http.StatusOK, rec.Code, env.Error)

	var result map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, ids[0], result["newParentId"])
	assert.Equal(t, float64(2), result["newLevel"])

	// Demoting the now-only child again has no target: 422.
	rec, _ = do(t, router, http.MethodPost, "/api/nodes/"+ids[1]+"/level",
		map[string]any{"direction": "down"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
