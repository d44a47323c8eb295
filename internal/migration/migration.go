// Package migration creates the engine's tables at startup so the system is
// usable out of the box for local and self-hosted environments.
package migration

import (
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	meetingdomain "github.com/revenuedesk/appealflow/internal/meeting/domain"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	votingdomain "github.com/revenuedesk/appealflow/internal/voting/domain"
	"gorm.io/gorm"
)

// Models lists every persisted type, children after parents.
func Models() []any {
	return []any{
		&memberdomain.Member{},
		&casedomain.Case{},
		&casedomain.CaseTracking{},
		&casedomain.TaxItem{},
		&casedomain.AppealPoint{},
		&votingdomain.Vote{},
		&meetingdomain.Meeting{},
	}
}

// Run applies the schema for all engine tables.
func Run(conn *gorm.DB) error {
	return conn.AutoMigrate(Models()...)
}
