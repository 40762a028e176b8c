package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ta7wila/internal/infrastructure/permission"
	"ta7wila/internal/shared/constants"
	"ta7wila/internal/shared/logger"
)

func newPermissionRouter(t *testing.T, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	enforcer, err := permission.NewEnforcer(gdb, logger.NewLogger())
	require.NoError(t, err)
	require.NoError(t, enforcer.InitDefaultPolicies())

	permMW := NewPermissionMiddleware(enforcer, logger.NewLogger())

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserRole, role)
	})
	engine.POST("/manual-check", permMW.Require("transaction", "check"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.POST("/stores", permMW.Require("store", "create"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRequire_GrantsSeededActions(t *testing.T) {
	engine := newPermissionRouter(t, "merchant")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/manual-check", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stores", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequire_DeniesOutsideRole(t *testing.T) {
	engine := newPermissionRouter(t, "employee")

	// employees may submit manual checks but cannot create stores
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/manual-check", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stores", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
