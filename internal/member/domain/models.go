package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CommitteeGroup identifies the review panel a member sits on.
type CommitteeGroup string

// Role is the member's capability inside the committee.
type Role string

const (
	RoleCommitteeLeader Role = "COMMITTEE_LEADER"
	RoleCommitteeMember Role = "COMMITTEE_MEMBER"
)

// Member is one committee member in the directory.
// Available is the dynamic attendance flag that drives quorum size;
// it is always read live, never snapshotted.
type Member struct {
	ID             snowflake.ID   `gorm:"primaryKey"`
	Email          string         `gorm:"type:text;not null;uniqueIndex"`
	FullName       string         `gorm:"column:full_name;type:text;not null"`
	Title          string         `gorm:"type:text"`
	PhoneNumber    string         `gorm:"column:phone_number;type:text"`
	CommitteeGroup CommitteeGroup `gorm:"column:committee_group;type:text;not null;index"`
	Role           Role           `gorm:"type:text;not null;default:'COMMITTEE_MEMBER'"`
	Available      bool           `gorm:"not null;default:false"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "committee_members" }
