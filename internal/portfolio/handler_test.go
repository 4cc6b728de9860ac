package portfolio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func passthroughAuth(c *gin.Context) { c.Next() }

func newTestRouter() (*gin.Engine, *Service) {
	g := gin.New()
	svc := newTestService()
	NewHandler(svc).Register(g, passthroughAuth)
	return g, svc
}

func TestProjectHandler_CRUD(t *testing.T) {
	g, _ := newTestRouter()

	// create
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"title":"Homelab","description":"self-hosted cluster","technologies":["k3s","argo"],"githubUrl":"https://github.com/x/homelab"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))
	id := cr["id"]
	require.NotEmpty(t, id)

	// list
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var list []Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Homelab", list[0].Title)

	// update
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/projects/"+id, strings.NewReader(`{"title":"Homelab v2","description":"rebuilt"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// delete
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/projects/"+id, nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// gone
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/projects/"+id, nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Reorder(t *testing.T) {
	g, svc := newTestRouter()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		id, err := svc.CreateProject(ctx, &Project{Title: title, Description: "d"})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	body, _ := json.Marshal(gin.H{"projectIds": []string{ids[2], ids[0], ids[1]}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/projects/reorder", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	g.ServeHTTP(w, req)
	var list []Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, []string{"C", "A", "B"}, []string{list[0].Title, list[1].Title, list[2].Title})
	require.Equal(t, []int{0, 1, 2}, []int{list[0].Order, list[1].Order, list[2].Order})
}

func TestBlogHandler_PublishedFilterAndSlug(t *testing.T) {
	g, _ := newTestRouter()

	post := `{"title":"Hello, World! 2024","content":"words and more words","tags":["meta"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/blog", strings.NewReader(post))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))
	require.Equal(t, "hello-world-2024", cr["slug"])

	// draft is hidden from the public list
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/blog", nil)
	g.ServeHTTP(w, req)
	var public []BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &public))
	require.Empty(t, public)

	// but visible with ?all=true
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/blog?all=true", nil)
	g.ServeHTTP(w, req)
	var all []BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)

	// publish, then it appears publicly and by slug
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/blog/"+all[0].ID+"/publish", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/blog/hello-world-2024", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBlogHandler_Update(t *testing.T) {
	g, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/blog", strings.NewReader(`{"title":"First Draft","content":"words and more words"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/blog/"+cr["id"], strings.NewReader(`{"title":"Second Draft","content":"revised words"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var ur map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ur))
	require.Equal(t, "second-draft", ur["slug"])

	// unknown post id is a 404, not a 500
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/blog/missing", strings.NewReader(`{"title":"X Y","content":"some words"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExperienceHandler_Create(t *testing.T) {
	g, _ := newTestRouter()

	body := `{"company":"Acme","position":"Platform Engineer","startDate":"2022-03-01T00:00:00Z","isCurrentRole":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/experience", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/experience", nil)
	g.ServeHTTP(w, req)
	var list []Experience
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.True(t, list[0].IsCurrentRole)
	require.Nil(t, list[0].EndDate)
}
