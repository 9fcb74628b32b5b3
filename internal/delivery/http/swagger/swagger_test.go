package http_swagger

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type SwaggerControllerSuite struct {
	suite.Suite
}

func TestSwaggerControllerSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.RunSuite(t, new(SwaggerControllerSuite))
}

func get(docPath, path string) *httptest.ResponseRecorder {
	r := gin.New()
	New(docPath).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *SwaggerControllerSuite) TestServesGeneratedDoc(t provider.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "kinoswipe-docs")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	doc := `{"swagger":"2.0","info":{"title":"KinoSwipe API"},"basePath":"/api/v1"}`
	path := filepath.Join(dir, "swagger.json")
	assert.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	w := get(path, "/api/v1/swagger/doc.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, doc, w.Body.String())
}

func (s *SwaggerControllerSuite) TestMissingDocIsNotFound(t provider.T) {
	t.Parallel()

	w := get(filepath.Join(os.TempDir(), "kinoswipe-no-such-dir", "swagger.json"), "/api/v1/swagger/doc.json")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"api docs are not generated"}`, w.Body.String())
}

func (s *SwaggerControllerSuite) TestServesUI(t provider.T) {
	t.Parallel()

	w := get("", "/api/v1/swagger/index.html")

	assert.Equal(t, http.StatusOK, w.Code)
}
