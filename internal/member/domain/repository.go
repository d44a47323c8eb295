package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the committee-member store. Methods take the gorm handle so
// callers can run them inside their own transaction boundary.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, member *Member) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Member, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Member, error)
	ListByGroup(ctx context.Context, db *gorm.DB, group CommitteeGroup) ([]Member, error)
	CountByGroup(ctx context.Context, db *gorm.DB, group CommitteeGroup) (int64, error)
	CountAvailable(ctx context.Context, db *gorm.DB, group CommitteeGroup) (int64, error)
	Update(ctx context.Context, db *gorm.DB, member *Member) error
	SetAvailability(ctx context.Context, db *gorm.DB, id snowflake.ID, available bool) error
}
