// Package seed bootstraps a starter committee so a fresh install can accept
// votes without manual directory setup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	"gorm.io/gorm"
)

const defaultGroup = memberdomain.CommitteeGroup("GROUP_A")

// EnsureCommittee creates a default leader and two members when the member
// directory is empty. Safe to run on every startup.
func EnsureCommittee(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&memberdomain.Member{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		members := []memberdomain.Member{
			{
				ID:             node.Generate(),
				Email:          "leader@appealflow.local",
				FullName:       "Committee Leader",
				Title:          "Head of Appeals",
				CommitteeGroup: defaultGroup,
				Role:           memberdomain.RoleCommitteeLeader,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			{
				ID:             node.Generate(),
				Email:          "member.one@appealflow.local",
				FullName:       "First Member",
				CommitteeGroup: defaultGroup,
				Role:           memberdomain.RoleCommitteeMember,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			{
				ID:             node.Generate(),
				Email:          "member.two@appealflow.local",
				FullName:       "Second Member",
				CommitteeGroup: defaultGroup,
				Role:           memberdomain.RoleCommitteeMember,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
		}
		return tx.Create(&members).Error
	})
}
