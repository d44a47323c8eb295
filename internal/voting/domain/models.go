// Package domain contains persistence models for committee voting.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Decision is one committee member's position on an appeal point.
type Decision string

const (
	DecisionWithBasis Decision = "WITH_BASIS"
	DecisionNoBasis   Decision = "NO_BASIS"
	DecisionAbstain   Decision = "ABSTAIN"
)

// Valid reports whether d is a known decision.
func (d Decision) Valid() bool {
	switch d {
	case DecisionWithBasis, DecisionNoBasis, DecisionAbstain:
		return true
	default:
		return false
	}
}

// Vote is one member's decision on one appeal point. The composite unique
// index on (appeal_ref, member_id) is the authoritative duplicate guard;
// the service-level pre-check is only an optimization.
type Vote struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	AppealRef  snowflake.ID `gorm:"column:appeal_ref;not null;index;uniqueIndex:ux_votes_appeal_member"`
	MemberID   snowflake.ID `gorm:"column:member_id;not null;uniqueIndex:ux_votes_appeal_member"`
	MemberName string       `gorm:"column:member_name;type:text;not null"`
	Decision   Decision     `gorm:"type:text;not null"`
	Comment    string       `gorm:"type:text"`
	CastAt     time.Time    `gorm:"column:cast_at;not null"`
}

// TableName sets the database table name.
func (Vote) TableName() string { return "votes" }
