package permission

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ta7wila/internal/shared/logger"
)

func setupEnforcer(t *testing.T) *Enforcer {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	enforcer, err := NewEnforcer(gdb, logger.NewLogger())
	require.NoError(t, err)
	require.NoError(t, enforcer.InitDefaultPolicies())
	return enforcer
}

// TestDefaultPoliciesCoverRoutes pins every resource/action pair the route
// table guards with to the role that owns the endpoint. A mismatch between
// the route guards and the seeded policies locks the endpoint for everyone,
// so this table must change together with the router.
func TestDefaultPoliciesCoverRoutes(t *testing.T) {
	enforcer := setupEnforcer(t)

	grants := []struct {
		role     string
		resource string
		action   string
	}{
		// merchant dashboard
		{"merchant", "store", "create"},
		{"merchant", "store", "read"},
		{"merchant", "store", "update"},
		{"merchant", "destination", "create"},
		{"merchant", "destination", "read"},
		{"merchant", "destination", "update"},
		{"merchant", "transaction", "read"},
		{"merchant", "transaction", "check"},
		{"merchant", "invoice", "read"},
		{"merchant", "whatsapp", "read"},
		{"merchant", "whatsapp", "manage"},

		// employee claims on the merchant's stores
		{"employee", "store", "read"},
		{"employee", "destination", "read"},
		{"employee", "transaction", "read"},
		{"employee", "transaction", "check"},

		// admin review and provisioning
		{"admin", "store", "read"},
		{"admin", "store", "update"},
		{"admin", "destination", "read"},
		{"admin", "transaction", "read"},
		{"admin", "verification", "read"},
		{"admin", "verification", "check"},
		{"admin", "verification", "decide"},
		{"admin", "invoice", "read"},
		{"admin", "user", "create"},
		{"admin", "user", "read"},
		{"admin", "whatsapp", "read"},
		{"admin", "whatsapp", "manage"},
	}

	for _, g := range grants {
		allowed, err := enforcer.Enforce(g.role, g.resource, g.action)
		require.NoError(t, err)
		assert.True(t, allowed, "%s should be granted %s/%s", g.role, g.resource, g.action)
	}
}

func TestDefaultPoliciesDenials(t *testing.T) {
	enforcer := setupEnforcer(t)

	denials := []struct {
		role     string
		resource string
		action   string
	}{
		// employees cannot manage stores or destinations
		{"employee", "store", "create"},
		{"employee", "store", "update"},
		{"employee", "destination", "create"},
		{"employee", "destination", "update"},

		// only admins review claims and provision accounts
		{"merchant", "verification", "decide"},
		{"merchant", "user", "create"},
		{"employee", "user", "create"},

		// unknown action vocabulary is never granted
		{"merchant", "store", "write"},
		{"admin", "transaction", "write"},
	}

	for _, d := range denials {
		allowed, err := enforcer.Enforce(d.role, d.resource, d.action)
		require.NoError(t, err)
		assert.False(t, allowed, "%s must not be granted %s/%s", d.role, d.resource, d.action)
	}
}

func TestAddAndRemovePolicy(t *testing.T) {
	enforcer := setupEnforcer(t)

	allowed, err := enforcer.Enforce("employee", "whatsapp", "manage")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, enforcer.AddPolicy("employee", "whatsapp", "manage"))
	allowed, err = enforcer.Enforce("employee", "whatsapp", "manage")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, enforcer.RemovePolicy("employee", "whatsapp", "manage"))
	allowed, err = enforcer.Enforce("employee", "whatsapp", "manage")
	require.NoError(t, err)
	assert.False(t, allowed)
}
