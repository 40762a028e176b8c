package migration

import (
	"fmt"

	"gorm.io/gorm"
)

type AutoMigrateStrategy struct{}

func NewAutoMigrateStrategy() Strategy {
	return &AutoMigrateStrategy{}
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
