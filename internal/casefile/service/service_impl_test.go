package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	"github.com/revenuedesk/appealflow/internal/casefile/repository"
	"github.com/revenuedesk/appealflow/internal/clock"
	"github.com/revenuedesk/appealflow/internal/testutil"
	votingdomain "github.com/revenuedesk/appealflow/internal/voting/domain"
	"github.com/revenuedesk/appealflow/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (casedomain.Service, *gorm.DB, *clock.FakeClock, *snowflake.Node) {
	t.Helper()

	conn := testutil.OpenDB(t)
	node := testutil.Node(t)
	fc := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	svc := NewService(ServiceParam{
		DB:         conn,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fc,
		Metrics:    telemetry.NewNopMetrics(),
		Repository: repository.NewRepository(),
	})
	return svc, conn, fc, node
}

func sampleRequest(fc *clock.FakeClock, caseID string) casedomain.CreateCaseRequest {
	return casedomain.CreateCaseRequest{
		CaseID:              caseID,
		AuditorNames:        "R. Vause, M. Adeyemi",
		AcknowledgementDate: fc.Now().AddDate(0, 0, -14),
		AssessmentTime:      "2024-2025",
		AppealDate:          fc.Now().AddDate(0, 0, -7),
		AppealExpireDate:    fc.Now().AddDate(0, 0, 30),
		Presenter:           "M. Adeyemi",
		TIN:                 "302941187",
		AttachmentLink:      "https://files.revenue.example/bd-2026-0001.pdf",
		TaxItems: []casedomain.TaxItemInput{
			{
				TaxType:             "VAT",
				PrincipalAmount:     50000,
				UnderstatementFines: 5000,
				TotalTaxAndFines:    55000,
				AppealPoints: []casedomain.AppealPointInput{
					{AppealText: "output VAT double counted", ProposedSolution: "discharge"},
					{AppealText: "input credit denied in error", ProposedSolution: "partial discharge"},
				},
			},
			{
				TaxType:          "CIT",
				PrincipalAmount:  20000,
				OtherFines:       1000,
				TotalTaxAndFines: 21000,
				AppealPoints: []casedomain.AppealPointInput{
					{AppealText: "depreciation schedule disputed"},
				},
			},
		},
	}
}

func TestCreateCase(t *testing.T) {
	svc, conn, fc, _ := newTestService(t)

	resp, err := svc.Create(context.Background(), sampleRequest(fc, "BD-2026-0100"), "preparer@revenue.example")
	require.NoError(t, err)

	assert.Equal(t, "BD-2026-0100", resp.CaseID)
	assert.Equal(t, casedomain.StatusSubmitted, resp.Status)
	assert.Equal(t, "preparer@revenue.example", resp.PreparerEmail)
	assert.True(t, resp.SubmissionDate.Equal(fc.Now()))
	require.Len(t, resp.TaxItems, 2)
	assert.Len(t, resp.TaxItems[0].AppealPoints, 2)
	assert.Len(t, resp.TaxItems[1].AppealPoints, 1)

	// Tracking is created in lock-step and mirrors the workflow status.
	var tracking casedomain.CaseTracking
	require.NoError(t, conn.First(&tracking, "case_id = ?", "BD-2026-0100").Error)
	assert.Equal(t, casedomain.StatusSubmitted, tracking.Status)
	assert.Equal(t, "preparer@revenue.example", tracking.Preparer)
}

func TestCreateCaseDuplicate(t *testing.T) {
	svc, _, fc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), sampleRequest(fc, "BD-2026-0101"), "preparer@revenue.example")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), sampleRequest(fc, "BD-2026-0101"), "other@revenue.example")
	assert.ErrorIs(t, err, casedomain.ErrDuplicateCase)
}

func TestCreateCaseExpiryNotFuture(t *testing.T) {
	svc, _, fc, _ := newTestService(t)

	req := sampleRequest(fc, "BD-2026-0102")
	req.AppealExpireDate = fc.Now().AddDate(0, 0, -1)
	_, err := svc.Create(context.Background(), req, "preparer@revenue.example")
	assert.ErrorIs(t, err, casedomain.ErrExpiryNotFuture)

	req.AppealExpireDate = fc.Now()
	_, err = svc.Create(context.Background(), req, "preparer@revenue.example")
	assert.ErrorIs(t, err, casedomain.ErrExpiryNotFuture)
}

func TestReplacePreservesStatus(t *testing.T) {
	svc, _, fc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), sampleRequest(fc, "BD-2026-0103"), "preparer@revenue.example")
	require.NoError(t, err)
	require.NoError(t, svc.MoveToPreAppeal(context.Background(), "BD-2026-0103"))
	require.NoError(t, svc.MoveToAgenda(context.Background(), "BD-2026-0103"))

	replacement := sampleRequest(fc, "BD-2026-0103")
	replacement.TaxItems = replacement.TaxItems[:1]
	resp, err := svc.Replace(context.Background(), "BD-2026-0103", replacement, "preparer@revenue.example")
	require.NoError(t, err)

	// Content is replaced; the workflow position survives the rewrite.
	assert.Equal(t, casedomain.StatusReadyForAgenda, resp.Status)
	assert.Len(t, resp.TaxItems, 1)
}

func TestReplaceUnknownCase(t *testing.T) {
	svc, _, fc, _ := newTestService(t)

	_, err := svc.Replace(context.Background(), "BD-2026-9999", sampleRequest(fc, "BD-2026-9999"), "preparer@revenue.example")
	assert.ErrorIs(t, err, casedomain.ErrCaseNotFound)
}

func TestDeleteCascades(t *testing.T) {
	svc, conn, fc, node := newTestService(t)

	resp, err := svc.Create(context.Background(), sampleRequest(fc, "BD-2026-0104"), "preparer@revenue.example")
	require.NoError(t, err)

	// A vote on one of the appeal points must go with the case.
	appealRef, err := snowflake.ParseString(resp.TaxItems[0].AppealPoints[0].ID)
	require.NoError(t, err)
	require.NoError(t, conn.Create(&votingdomain.Vote{
		ID:         node.Generate(),
		AppealRef:  appealRef,
		MemberID:   node.Generate(),
		MemberName: "Ada Legrand",
		Decision:   votingdomain.DecisionWithBasis,
		CastAt:     fc.Now(),
	}).Error)

	require.NoError(t, svc.Delete(context.Background(), "BD-2026-0104"))

	_, err = svc.GetByCaseID(context.Background(), "BD-2026-0104")
	assert.ErrorIs(t, err, casedomain.ErrCaseNotFound)

	for _, table := range []string{"tax_items", "appeal_points", "votes", "case_trackings"} {
		var n int64
		require.NoError(t, conn.Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}
}

func TestMoveToAgendaRequiresPreAppeal(t *testing.T) {
	svc, _, fc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), sampleRequest(fc, "BD-2026-0105"), "preparer@revenue.example")
	require.NoError(t, err)

	err = svc.MoveToAgenda(context.Background(), "BD-2026-0105")
	assert.ErrorIs(t, err, casedomain.ErrInvalidTransition)

	require.NoError(t, svc.MoveToPreAppeal(context.Background(), "BD-2026-0105"))
	require.NoError(t, svc.MoveToAgenda(context.Background(), "BD-2026-0105"))

	resp, err := svc.GetByCaseID(context.Background(), "BD-2026-0105")
	require.NoError(t, err)
	assert.Equal(t, casedomain.StatusReadyForAgenda, resp.Status)
}
