package assets

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func passthroughAuth(c *gin.Context) { c.Next() }

func newAssetRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := NewService(NewMemoryRepository(), nil, filepath.Join(t.TempDir(), "resume.pdf"))
	NewHandler(svc).Register(g, passthroughAuth)
	return g
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestAvatarUploadAndFetch(t *testing.T) {
	g := newAssetRouter(t)
	payload := []byte("fake png bytes")

	body, ct := multipartUpload(t, "me.png", "image/png", payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profile/upload-avatar", body)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile/avatar", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.Equal(t, payload, w.Body.Bytes())
}

func TestAvatarFetch_Missing(t *testing.T) {
	g := newAssetRouter(t)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile/avatar", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectImageUpload_ReturnsServedURL(t *testing.T) {
	g := newAssetRouter(t)

	body, ct := multipartUpload(t, "shot.jpg", "image/jpeg", []byte("jpeg"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects/upload-image", body)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp["imageUrl"], "/api/projects/image/")

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp["imageUrl"], nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []byte("jpeg"), w.Body.Bytes())
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	g := newAssetRouter(t)

	body, ct := multipartUpload(t, "a.txt", "text/plain", []byte("hi"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profile/upload-avatar", body)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "unsupported content type")
}

func TestUpload_RequiresFilePart(t *testing.T) {
	g := newAssetRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeCheckAndDownload_EmptyState(t *testing.T) {
	g := newAssetRouter(t)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resume/check", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var st ResumeStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.False(t, st.Exists)
	require.False(t, st.Stored)

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resume/download", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumeUpload_VisibleInCheckStoreFlagOnly(t *testing.T) {
	g := newAssetRouter(t)

	body, ct := multipartUpload(t, "cv.pdf", "application/pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", body)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resume/check", nil))
	var st ResumeStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.True(t, st.Stored)
	require.False(t, st.Exists)
}
