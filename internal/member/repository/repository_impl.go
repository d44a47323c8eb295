package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() memberdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, member *memberdomain.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*memberdomain.Member, error) {
	var member memberdomain.Member
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *repository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*memberdomain.Member, error) {
	var member memberdomain.Member
	err := db.WithContext(ctx).
		Where("email = ?", email).
		Take(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *repository) ListByGroup(ctx context.Context, db *gorm.DB, group memberdomain.CommitteeGroup) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	err := db.WithContext(ctx).
		Where("committee_group = ?", group).
		Order("full_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) CountByGroup(ctx context.Context, db *gorm.DB, group memberdomain.CommitteeGroup) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("committee_group = ?", group).
		Count(&count).Error
	return count, err
}

func (r *repository) CountAvailable(ctx context.Context, db *gorm.DB, group memberdomain.CommitteeGroup) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("committee_group = ? AND available = ?", group, true).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, member *memberdomain.Member) error {
	return db.WithContext(ctx).Exec(
		`UPDATE committee_members
		 SET email = ?, full_name = ?, title = ?, phone_number = ?, committee_group = ?, role = ?, updated_at = ?
		 WHERE id = ?`,
		member.Email,
		member.FullName,
		member.Title,
		member.PhoneNumber,
		member.CommitteeGroup,
		member.Role,
		member.UpdatedAt,
		member.ID,
	).Error
}

func (r *repository) SetAvailability(ctx context.Context, db *gorm.DB, id snowflake.ID, available bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE committee_members SET available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		available,
		id,
	).Error
}
