package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	votingdomain "github.com/revenuedesk/appealflow/internal/voting/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() votingdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, vote *votingdomain.Vote) error {
	return db.WithContext(ctx).Create(vote).Error
}

func (r *repository) FindByAppealAndMember(ctx context.Context, db *gorm.DB, appealRef, memberID snowflake.ID) (*votingdomain.Vote, error) {
	var vote votingdomain.Vote
	err := db.WithContext(ctx).
		Where("appeal_ref = ? AND member_id = ?", appealRef, memberID).
		Take(&vote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

func (r *repository) CountByAppeal(ctx context.Context, db *gorm.DB, appealRef snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&votingdomain.Vote{}).
		Where("appeal_ref = ?", appealRef).
		Count(&count).Error
	return count, err
}

func (r *repository) ListByAppeal(ctx context.Context, db *gorm.DB, appealRef snowflake.ID) ([]votingdomain.Vote, error) {
	var votes []votingdomain.Vote
	err := db.WithContext(ctx).
		Where("appeal_ref = ?", appealRef).
		Order("LOWER(member_name) ASC, id ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}
