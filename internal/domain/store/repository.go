package store

import (
	"context"
)

// Repository defines persistence operations for stores.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	GetByDBID(ctx context.Context, dbID uint) (*Store, error)
	GetBySID(ctx context.Context, sid string) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]*Store, int64, error)
	List(ctx context.Context, offset, limit int) ([]*Store, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
