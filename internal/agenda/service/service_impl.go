package service

import (
	"context"
	"math"
	"sort"
	"time"

	agendadomain "github.com/revenuedesk/appealflow/internal/agenda/domain"
	"github.com/revenuedesk/appealflow/internal/assessment"
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	"github.com/revenuedesk/appealflow/internal/clock"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	"github.com/revenuedesk/appealflow/pkg/db/pagination"
	"github.com/revenuedesk/appealflow/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// agendaStatuses keeps resolved cases visible on the agenda after voting.
var agendaStatuses = []casedomain.CaseStatus{
	casedomain.StatusReadyForAgenda,
	casedomain.StatusPending,
	casedomain.StatusResolved,
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Metrics *telemetry.Metrics
	Cases   casedomain.Repository
	Members memberdomain.Repository
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	metrics *telemetry.Metrics
	cases   casedomain.Repository
	members memberdomain.Repository
}

func NewService(p ServiceParam) agendadomain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log,
		clock:   p.Clock,
		metrics: p.Metrics,
		cases:   p.Cases,
		members: p.Members,
	}
}

func (s *service) Agenda(ctx context.Context, page pagination.Pagination) (pagination.Page[agendadomain.Entry], error) {
	page = page.Normalize()

	total, err := s.cases.CountByStatuses(ctx, s.db, agendaStatuses)
	if err != nil {
		return pagination.Page[agendadomain.Entry]{}, err
	}
	cases, err := s.cases.ListByStatuses(ctx, s.db, agendaStatuses, page.Size, page.Offset())
	if err != nil {
		return pagination.Page[agendadomain.Entry]{}, err
	}

	entries, err := s.enrich(ctx, cases)
	if err != nil {
		return pagination.Page[agendadomain.Entry]{}, err
	}

	// PENDING cases first, then ascending days-left.
	sort.SliceStable(entries, func(i, j int) bool {
		iPending := entries[i].Status == casedomain.StatusPending
		jPending := entries[j].Status == casedomain.StatusPending
		if iPending != jPending {
			return iPending
		}
		return entries[i].DaysLeft < entries[j].DaysLeft
	})

	return pagination.New(entries, page, total), nil
}

func (s *service) PreAppealQueue(ctx context.Context, page pagination.Pagination, preparerEmail string) (pagination.Page[agendadomain.Entry], error) {
	page = page.Normalize()

	total, err := s.cases.CountByStatusAndPreparer(ctx, s.db, casedomain.StatusPreAppeal, preparerEmail)
	if err != nil {
		return pagination.Page[agendadomain.Entry]{}, err
	}
	cases, err := s.cases.ListByStatusAndPreparer(ctx, s.db, casedomain.StatusPreAppeal, preparerEmail, page.Size, page.Offset())
	if err != nil {
		return pagination.Page[agendadomain.Entry]{}, err
	}

	entries, err := s.enrich(ctx, cases)
	if err != nil {
		return pagination.Page[agendadomain.Entry]{}, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysLeft < entries[j].DaysLeft
	})

	return pagination.New(entries, page, total), nil
}

func (s *service) MyCases(ctx context.Context, preparerEmail string) ([]agendadomain.TrackedCase, error) {
	records, err := s.cases.ListTrackingByPreparer(ctx, s.db, preparerEmail)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	out := make([]agendadomain.TrackedCase, 0, len(records))
	for _, record := range records {
		c, err := s.cases.FindByCaseID(ctx, s.db, record.CaseID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			continue
		}
		out = append(out, agendadomain.TrackedCase{
			CaseID:         c.CaseID,
			Status:         record.Status,
			DaysLeft:       daysLeft(today, c.AppealExpireDate),
			Presenter:      c.Presenter,
			TIN:            c.TIN,
			SubmissionDate: c.SubmissionDate,
		})
	}
	return out, nil
}

func (s *service) Dashboard(ctx context.Context, memberEmail string) (*agendadomain.Dashboard, error) {
	member, err := s.members.FindByEmail(ctx, s.db, memberEmail)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, memberdomain.ErrUserNotFound
	}

	total, err := s.cases.CountTracking(ctx, s.db)
	if err != nil {
		return nil, err
	}
	pending, err := s.cases.CountTrackingByStatus(ctx, s.db, casedomain.StatusPending)
	if err != nil {
		return nil, err
	}
	reviewed, err := s.cases.CountTrackingByStatus(ctx, s.db, casedomain.StatusResolved)
	if err != nil {
		return nil, err
	}

	var rate float64
	if total > 0 {
		rate = math.Round(float64(reviewed)*100.0/float64(total)*100.0) / 100.0
	}

	totalMembers, err := s.members.CountByGroup(ctx, s.db, member.CommitteeGroup)
	if err != nil {
		return nil, err
	}
	available, err := s.members.CountAvailable(ctx, s.db, member.CommitteeGroup)
	if err != nil {
		return nil, err
	}

	return &agendadomain.Dashboard{
		TotalCases:    total,
		PendingCases:  pending,
		ReviewedCases: reviewed,
		ReviewRate:    rate,
		Attendance: agendadomain.Attendance{
			TotalMembers:     totalMembers,
			AvailableMembers: available,
		},
	}, nil
}

func (s *service) enrich(ctx context.Context, cases []casedomain.Case) ([]agendadomain.Entry, error) {
	today := s.clock.Now()
	entries := make([]agendadomain.Entry, 0, len(cases))
	for i := range cases {
		c := &cases[i]
		items, err := s.cases.TaxItemsByCase(ctx, s.db, c.ID)
		if err != nil {
			return nil, err
		}
		totals, err := assessment.Compute(items)
		if err != nil {
			// assessment.ErrNegativeBalance means corrupted upstream data,
			// not a normal business rejection.
			s.metrics.IntegrityFault()
			s.log.Error("case failed balance integrity check",
				zap.String("case_id", c.CaseID),
				zap.Error(err),
			)
			return nil, err
		}

		entries = append(entries, agendadomain.Entry{
			CaseID:           c.CaseID,
			Presenter:        c.Presenter,
			TIN:              c.TIN,
			Status:           c.Status,
			DaysLeft:         daysLeft(today, c.AppealExpireDate),
			AppealDate:       c.AppealDate,
			AuditorNames:     c.AuditorNames,
			AmountDischarged: totals.Discharged,
			AmountDue:        totals.Due,
		})
	}
	return entries, nil
}

// daysLeft is the whole-day distance from today to expiry, floored at zero.
func daysLeft(today, expiry time.Time) int64 {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	days := int64(e.Sub(t) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
