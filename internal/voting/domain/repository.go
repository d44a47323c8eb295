package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the vote store. Methods take the gorm handle so the vote
// insert and the quorum re-evaluation share one transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, vote *Vote) error
	FindByAppealAndMember(ctx context.Context, db *gorm.DB, appealRef, memberID snowflake.ID) (*Vote, error)
	CountByAppeal(ctx context.Context, db *gorm.DB, appealRef snowflake.ID) (int64, error)
	// ListByAppeal returns votes ordered by member display name,
	// case-insensitive ascending.
	ListByAppeal(ctx context.Context, db *gorm.DB, appealRef snowflake.ID) ([]Vote, error)
}
