// Package domain contains persistence models for the case lifecycle.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// CaseStatus represents case lifecycle states.
type CaseStatus string

const (
	StatusSubmitted      CaseStatus = "SUBMITTED"
	StatusPreAppeal      CaseStatus = "PRE_APPEAL"
	StatusReadyForAgenda CaseStatus = "READY_FOR_AGENDA"
	StatusPending        CaseStatus = "PENDING"
	StatusResolved       CaseStatus = "RESOLVED"
)

// Valid reports whether s is a known lifecycle state.
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusPreAppeal, StatusReadyForAgenda, StatusPending, StatusResolved:
		return true
	default:
		return false
	}
}

// Case is one taxpayer's appeal dossier. CaseID is the externally supplied
// business key; ID is the generated surrogate key children reference.
type Case struct {
	ID                  snowflake.ID      `gorm:"primaryKey"`
	CaseID              string            `gorm:"column:case_id;type:text;not null;uniqueIndex"`
	AuditorNames        string            `gorm:"column:auditor_names;type:text;not null"`
	AcknowledgementDate time.Time         `gorm:"column:acknowledgement_date;not null"`
	AssessmentTime      string            `gorm:"column:assessment_time;type:text;not null"`
	AppealDate          time.Time         `gorm:"column:appeal_date;not null"`
	AppealExpireDate    time.Time         `gorm:"column:appeal_expire_date;not null"`
	Presenter           string            `gorm:"type:text;not null"`
	TIN                 string            `gorm:"column:tin;type:text;not null"`
	AttachmentLink      string            `gorm:"column:attachment_link;type:text"`
	PreparerEmail       string            `gorm:"column:preparer_email;type:text;not null;index"`
	SubmissionDate      time.Time         `gorm:"column:submission_date;not null"`
	Status              CaseStatus        `gorm:"type:text;not null;index"`
	Metadata            datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Case) TableName() string { return "cases" }

// CaseTracking is the preparer-facing companion record created at submission.
// Its Status column mirrors Case.Status; every transition writes both rows
// inside the same transaction.
type CaseTracking struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	CaseID    string       `gorm:"column:case_id;type:text;not null;uniqueIndex"`
	Preparer  string       `gorm:"type:text;not null;index"`
	Status    CaseStatus   `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CaseTracking) TableName() string { return "case_trackings" }

// TaxItem is one audited tax type within a case. Amounts are integer minor units.
type TaxItem struct {
	ID                       snowflake.ID `gorm:"primaryKey"`
	CaseRef                  snowflake.ID `gorm:"column:case_ref;not null;index"`
	TaxType                  string       `gorm:"column:tax_type;type:text;not null"`
	PrincipalAmount          int64        `gorm:"column:principal_amount;not null"`
	UnderstatementFines      int64        `gorm:"column:understatement_fines;not null"`
	FixedAdministrativeFines int64        `gorm:"column:fixed_administrative_fines;not null"`
	DischargedAmount         int64        `gorm:"column:discharged_amount;not null"`
	OtherFines               int64        `gorm:"column:other_fines;not null"`
	TotalTaxAndFines         int64        `gorm:"column:total_tax_and_fines;not null"`
}

// TableName sets the database table name.
func (TaxItem) TableName() string { return "tax_items" }

// AppealPoint is one contested issue within a tax item. CaseRef is denormalized
// so whole-case quorum checks avoid walking through tax_items.
type AppealPoint struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	TaxItemRef        snowflake.ID `gorm:"column:tax_item_ref;not null;index"`
	CaseRef           snowflake.ID `gorm:"column:case_ref;not null;index"`
	AppealText        string       `gorm:"column:appeal_text;type:text;not null"`
	SummarizedProblem string       `gorm:"column:summarized_problem;type:text"`
	AuditorOpinion    string       `gorm:"column:auditor_opinion;type:text"`
	ProposedSolution  string       `gorm:"column:proposed_solution;type:text"`
}

// TableName sets the database table name.
func (AppealPoint) TableName() string { return "appeal_points" }
