package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(role string, set bool) int {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if set {
				c.Set(ContextUserRole, role)
			}
			c.Next()
		})
		router.GET("/manage", ManagerOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(models.RoleManager, true))
	assert.Equal(t, http.StatusForbidden, run(models.RoleCustomer, true))
	assert.Equal(t, http.StatusForbidden, run("", false))
}
