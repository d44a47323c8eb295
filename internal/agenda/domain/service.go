// Package domain defines the read-only case projections.
package domain

import (
	"context"
	"time"

	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	"github.com/revenuedesk/appealflow/pkg/db/pagination"
)

type Service interface {
	// Agenda lists cases ready for, under, or past committee discussion,
	// PENDING first, then ascending days-left.
	Agenda(ctx context.Context, page pagination.Pagination) (pagination.Page[Entry], error)
	// PreAppealQueue lists the preparer's PRE_APPEAL cases, ascending days-left.
	PreAppealQueue(ctx context.Context, page pagination.Pagination, preparerEmail string) (pagination.Page[Entry], error)
	// MyCases returns the preparer's tracking records.
	MyCases(ctx context.Context, preparerEmail string) ([]TrackedCase, error)
	// Dashboard summarizes workload and committee attendance for the member.
	Dashboard(ctx context.Context, memberEmail string) (*Dashboard, error)
}

// Entry is one agenda or pre-appeal row, enriched with computed fields.
type Entry struct {
	CaseID           string                `json:"case_id"`
	Presenter        string                `json:"presenter"`
	TIN              string                `json:"tin"`
	Status           casedomain.CaseStatus `json:"status"`
	DaysLeft         int64                 `json:"days_left"`
	AppealDate       time.Time             `json:"appeal_date"`
	AuditorNames     string                `json:"auditor_names"`
	AmountDischarged int64                 `json:"amount_discharged"`
	AmountDue        int64                 `json:"amount_due"`
}

// TrackedCase is one row of a preparer's case list.
type TrackedCase struct {
	CaseID         string                `json:"case_id"`
	Status         casedomain.CaseStatus `json:"status"`
	DaysLeft       int64                 `json:"days_left"`
	Presenter      string                `json:"presenter"`
	TIN            string                `json:"tin"`
	SubmissionDate time.Time             `json:"submission_date"`
}

// Dashboard aggregates workload counters and committee attendance.
type Dashboard struct {
	TotalCases    int64      `json:"total_cases"`
	PendingCases  int64      `json:"pending_cases"`
	ReviewedCases int64      `json:"reviewed_cases"`
	ReviewRate    float64    `json:"review_rate"`
	Attendance    Attendance `json:"attendance"`
}

type Attendance struct {
	TotalMembers     int64 `json:"total_members"`
	AvailableMembers int64 `json:"available_members"`
}
