package permission

import (
	"fmt"
)

// InitDefaultPolicies seeds the role policies the platform ships with.
// Employees inherit from merchant for store-scoped resources but cannot
// manage destinations or settings.
func (e *Enforcer) InitDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	policies := [][]string{
		// Admins review claims across all stores and manage the platform.
		{"admin", "store", "read"},
		{"admin", "store", "update"},
		{"admin", "destination", "read"},
		{"admin", "verification", "read"},
		{"admin", "verification", "check"},
		{"admin", "verification", "decide"},
		{"admin", "transaction", "read"},
		{"admin", "invoice", "read"},
		{"admin", "invoice", "issue"},
		{"admin", "user", "create"},
		{"admin", "user", "read"},
		{"admin", "user", "update"},
		{"admin", "whatsapp", "read"},
		{"admin", "whatsapp", "manage"},

		// Merchants manage their own stores end to end.
		{"merchant", "store", "create"},
		{"merchant", "store", "read"},
		{"merchant", "store", "update"},
		{"merchant", "destination", "create"},
		{"merchant", "destination", "read"},
		{"merchant", "destination", "update"},
		{"merchant", "transaction", "read"},
		{"merchant", "transaction", "check"},
		{"merchant", "verification", "read"},
		{"merchant", "invoice", "read"},
		{"merchant", "whatsapp", "read"},
		{"merchant", "whatsapp", "manage"},

		// Employees submit and track claims on the merchant's stores.
		{"employee", "store", "read"},
		{"employee", "destination", "read"},
		{"employee", "transaction", "read"},
		{"employee", "transaction", "check"},
		{"employee", "verification", "read"},
		{"employee", "whatsapp", "read"},
	}

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save policies: %w", err)
	}

	e.logger.Info("default role policies initialized")
	return nil
}
