package service

import (
	"context"
	"testing"
	"time"

	agendadomain "github.com/revenuedesk/appealflow/internal/agenda/domain"
	"github.com/revenuedesk/appealflow/internal/assessment"
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	caserepository "github.com/revenuedesk/appealflow/internal/casefile/repository"
	caseservice "github.com/revenuedesk/appealflow/internal/casefile/service"
	"github.com/revenuedesk/appealflow/internal/clock"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	memberrepository "github.com/revenuedesk/appealflow/internal/member/repository"
	"github.com/revenuedesk/appealflow/internal/testutil"
	"github.com/revenuedesk/appealflow/pkg/db/pagination"
	"github.com/revenuedesk/appealflow/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	clock    *clock.FakeClock
	agenda   agendadomain.Service
	cases    casedomain.Service
	caseRepo casedomain.Repository
	members  memberdomain.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := testutil.OpenDB(t)
	node := testutil.Node(t)
	fc := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	caseRepo := caserepository.NewRepository()
	caseSvc := caseservice.NewService(caseservice.ServiceParam{
		DB:         conn,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fc,
		Metrics:    telemetry.NewNopMetrics(),
		Repository: caseRepo,
	})
	memberRepo := memberrepository.NewRepository()

	agendaSvc := NewService(ServiceParam{
		DB:      conn,
		Log:     zap.NewNop(),
		Clock:   fc,
		Metrics: telemetry.NewNopMetrics(),
		Cases:   caseRepo,
		Members: memberRepo,
	})

	return &fixture{
		db:       conn,
		clock:    fc,
		agenda:   agendaSvc,
		cases:    caseSvc,
		caseRepo: caseRepo,
		members:  memberRepo,
	}
}

// seedCase creates a case expiring the given number of days from today and
// forces it into the given status.
func (f *fixture) seedCase(t *testing.T, caseID, preparer string, daysToExpiry int, status casedomain.CaseStatus, discharged int64) {
	t.Helper()

	_, err := f.cases.Create(context.Background(), casedomain.CreateCaseRequest{
		CaseID:           caseID,
		AuditorNames:     "R. Vause",
		Presenter:        "M. Adeyemi",
		AppealDate:       f.clock.Now().AddDate(0, 0, -7),
		AppealExpireDate: f.clock.Now().AddDate(0, 0, daysToExpiry),
		TIN:              "302941187",
		TaxItems: []casedomain.TaxItemInput{{
			TaxType:          "VAT",
			PrincipalAmount:  50000,
			DischargedAmount: discharged,
			TotalTaxAndFines: 50000,
			AppealPoints:     []casedomain.AppealPointInput{{AppealText: "contested"}},
		}},
	}, preparer)
	require.NoError(t, err)

	if status != casedomain.StatusSubmitted {
		require.NoError(t, f.caseRepo.UpdateStatus(context.Background(), f.db, caseID, status))
	}
}

func TestAgendaOrdering(t *testing.T) {
	f := newFixture(t)
	f.seedCase(t, "BD-A", "p@revenue.example", 10, casedomain.StatusPending, 0)
	f.seedCase(t, "BD-B", "p@revenue.example", 2, casedomain.StatusReadyForAgenda, 0)
	f.seedCase(t, "BD-C", "p@revenue.example", 5, casedomain.StatusResolved, 0)
	// Out-of-scope statuses never surface here.
	f.seedCase(t, "BD-D", "p@revenue.example", 1, casedomain.StatusSubmitted, 0)
	f.seedCase(t, "BD-E", "p@revenue.example", 1, casedomain.StatusPreAppeal, 0)

	page, err := f.agenda.Agenda(context.Background(), pagination.Pagination{})
	require.NoError(t, err)

	require.Len(t, page.Content, 3)
	assert.Equal(t, "BD-A", page.Content[0].CaseID)
	assert.Equal(t, "BD-B", page.Content[1].CaseID)
	assert.Equal(t, "BD-C", page.Content[2].CaseID)
	assert.Equal(t, int64(3), page.TotalElements)

	assert.Equal(t, int64(10), page.Content[0].DaysLeft)
	assert.Equal(t, int64(2), page.Content[1].DaysLeft)
	assert.Equal(t, int64(5), page.Content[2].DaysLeft)
}

func TestAgendaDaysLeftFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	f.seedCase(t, "BD-F", "p@revenue.example", 2, casedomain.StatusReadyForAgenda, 0)

	f.clock.Advance(5 * 24 * time.Hour)

	page, err := f.agenda.Agenda(context.Background(), pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(0), page.Content[0].DaysLeft)
}

func TestAgendaPagination(t *testing.T) {
	f := newFixture(t)
	f.seedCase(t, "BD-1", "p@revenue.example", 1, casedomain.StatusReadyForAgenda, 0)
	f.seedCase(t, "BD-2", "p@revenue.example", 2, casedomain.StatusReadyForAgenda, 0)
	f.seedCase(t, "BD-3", "p@revenue.example", 3, casedomain.StatusReadyForAgenda, 0)

	first, err := f.agenda.Agenda(context.Background(), pagination.Pagination{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Len(t, first.Content, 2)
	assert.Equal(t, int64(3), first.TotalElements)
	assert.Equal(t, 2, first.TotalPages)

	second, err := f.agenda.Agenda(context.Background(), pagination.Pagination{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, second.Content, 1)
}

func TestAgendaNegativeBalanceFailsClosed(t *testing.T) {
	f := newFixture(t)
	// Discharged beyond the assessed total is corrupted data, not a view to render.
	f.seedCase(t, "BD-BAD", "p@revenue.example", 3, casedomain.StatusReadyForAgenda, 60000)

	_, err := f.agenda.Agenda(context.Background(), pagination.Pagination{})
	assert.ErrorIs(t, err, assessment.ErrNegativeBalance)
}

func TestPreAppealQueue(t *testing.T) {
	f := newFixture(t)
	f.seedCase(t, "BD-P1", "mine@revenue.example", 8, casedomain.StatusPreAppeal, 0)
	f.seedCase(t, "BD-P2", "mine@revenue.example", 3, casedomain.StatusPreAppeal, 0)
	f.seedCase(t, "BD-P3", "other@revenue.example", 1, casedomain.StatusPreAppeal, 0)
	f.seedCase(t, "BD-P4", "mine@revenue.example", 1, casedomain.StatusReadyForAgenda, 0)

	page, err := f.agenda.PreAppealQueue(context.Background(), pagination.Pagination{}, "mine@revenue.example")
	require.NoError(t, err)

	require.Len(t, page.Content, 2)
	assert.Equal(t, "BD-P2", page.Content[0].CaseID)
	assert.Equal(t, "BD-P1", page.Content[1].CaseID)
}

func TestMyCases(t *testing.T) {
	f := newFixture(t)
	f.seedCase(t, "BD-M1", "mine@revenue.example", 8, casedomain.StatusSubmitted, 0)
	f.seedCase(t, "BD-M2", "mine@revenue.example", 3, casedomain.StatusResolved, 0)
	f.seedCase(t, "BD-M3", "other@revenue.example", 1, casedomain.StatusSubmitted, 0)

	tracked, err := f.agenda.MyCases(context.Background(), "mine@revenue.example")
	require.NoError(t, err)

	require.Len(t, tracked, 2)
	byID := make(map[string]agendadomain.TrackedCase, len(tracked))
	for _, tc := range tracked {
		byID[tc.CaseID] = tc
	}
	assert.Equal(t, casedomain.StatusSubmitted, byID["BD-M1"].Status)
	assert.Equal(t, casedomain.StatusResolved, byID["BD-M2"].Status)
	assert.Equal(t, int64(8), byID["BD-M1"].DaysLeft)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	node := testutil.Node(t)

	seedMember := func(email, name string, available bool) {
		m := &memberdomain.Member{
			ID:             node.Generate(),
			Email:          email,
			FullName:       name,
			CommitteeGroup: "GROUP_A",
			Role:           memberdomain.RoleCommitteeMember,
			Available:      available,
			CreatedAt:      f.clock.Now(),
			UpdatedAt:      f.clock.Now(),
		}
		require.NoError(t, f.members.Insert(context.Background(), f.db, m))
	}
	seedMember("a@revenue.example", "Ada Legrand", true)
	seedMember("b@revenue.example", "Bram Holt", true)
	seedMember("c@revenue.example", "Cleo Marsh", false)

	f.seedCase(t, "BD-D1", "p@revenue.example", 5, casedomain.StatusSubmitted, 0)
	f.seedCase(t, "BD-D2", "p@revenue.example", 5, casedomain.StatusPending, 0)
	f.seedCase(t, "BD-D3", "p@revenue.example", 5, casedomain.StatusResolved, 0)
	f.seedCase(t, "BD-D4", "p@revenue.example", 5, casedomain.StatusResolved, 0)

	dash, err := f.agenda.Dashboard(context.Background(), "a@revenue.example")
	require.NoError(t, err)

	assert.Equal(t, int64(4), dash.TotalCases)
	assert.Equal(t, int64(1), dash.PendingCases)
	assert.Equal(t, int64(2), dash.ReviewedCases)
	assert.Equal(t, 50.0, dash.ReviewRate)
	assert.Equal(t, int64(3), dash.Attendance.TotalMembers)
	assert.Equal(t, int64(2), dash.Attendance.AvailableMembers)

	_, err = f.agenda.Dashboard(context.Background(), "nobody@revenue.example")
	assert.ErrorIs(t, err, memberdomain.ErrUserNotFound)
}
