package service

import (
	"context"
	"testing"
	"time"

	"github.com/revenuedesk/appealflow/internal/clock"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	"github.com/revenuedesk/appealflow/internal/member/repository"
	"github.com/revenuedesk/appealflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) memberdomain.Service {
	t.Helper()

	return NewService(ServiceParam{
		DB:         testutil.OpenDB(t),
		Log:        zap.NewNop(),
		GenID:      testutil.Node(t),
		Clock:      clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		Repository: repository.NewRepository(),
	})
}

func register(t *testing.T, svc memberdomain.Service, email, name string, role memberdomain.Role) *memberdomain.Response {
	t.Helper()

	resp, err := svc.Register(context.Background(), memberdomain.RegisterRequest{
		Email:          email,
		FullName:       name,
		CommitteeGroup: "GROUP_A",
		Role:           role,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterDefaultsRole(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(context.Background(), memberdomain.RegisterRequest{
		Email:          "  ines@revenue.example  ",
		FullName:       "Ines Okafor",
		CommitteeGroup: "GROUP_A",
	})
	require.NoError(t, err)

	assert.Equal(t, "ines@revenue.example", resp.Email)
	assert.Equal(t, memberdomain.RoleCommitteeMember, resp.Role)
	assert.False(t, resp.Available)

	_, err = svc.Register(context.Background(), memberdomain.RegisterRequest{
		Email:          "x@revenue.example",
		FullName:       "X",
		CommitteeGroup: "GROUP_A",
		Role:           "SUPERVISOR",
	})
	assert.ErrorIs(t, err, memberdomain.ErrInvalidRole)
}

func TestGetByEmail(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "ines@revenue.example", "Ines Okafor", memberdomain.RoleCommitteeMember)

	resp, err := svc.GetByEmail(context.Background(), "ines@revenue.example")
	require.NoError(t, err)
	assert.Equal(t, "Ines Okafor", resp.FullName)

	_, err = svc.GetByEmail(context.Background(), "missing@revenue.example")
	assert.ErrorIs(t, err, memberdomain.ErrUserNotFound)
}

func TestGetByID(t *testing.T) {
	svc := newTestService(t)
	created := register(t, svc, "ines@revenue.example", "Ines Okafor", memberdomain.RoleCommitteeMember)

	resp, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ines@revenue.example", resp.Email)

	_, err = svc.GetByID(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, memberdomain.ErrUserNotFound)
}

func TestUpdateMember(t *testing.T) {
	svc := newTestService(t)
	created := register(t, svc, "ines@revenue.example", "Ines Okafor", memberdomain.RoleCommitteeMember)

	name := "Ines Okafor-Bell"
	title := "Senior Auditor"
	role := memberdomain.RoleCommitteeLeader
	resp, err := svc.Update(context.Background(), created.ID, memberdomain.UpdateRequest{
		FullName: &name,
		Title:    &title,
		Role:     &role,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ines Okafor-Bell", resp.FullName)
	assert.Equal(t, "Senior Auditor", resp.Title)
	assert.Equal(t, memberdomain.RoleCommitteeLeader, resp.Role)

	// Blank strings do not clobber existing values.
	blank := "   "
	resp, err = svc.Update(context.Background(), created.ID, memberdomain.UpdateRequest{FullName: &blank})
	require.NoError(t, err)
	assert.Equal(t, "Ines Okafor-Bell", resp.FullName)

	bad := memberdomain.Role("SUPERVISOR")
	_, err = svc.Update(context.Background(), created.ID, memberdomain.UpdateRequest{Role: &bad})
	assert.ErrorIs(t, err, memberdomain.ErrInvalidRole)
}

func TestSetAvailability(t *testing.T) {
	svc := newTestService(t)
	created := register(t, svc, "ines@revenue.example", "Ines Okafor", memberdomain.RoleCommitteeMember)

	require.NoError(t, svc.SetAvailability(context.Background(), created.ID, true))
	resp, err := svc.GetByEmail(context.Background(), "ines@revenue.example")
	require.NoError(t, err)
	assert.True(t, resp.Available)

	err = svc.SetAvailability(context.Background(), "123456789", false)
	assert.ErrorIs(t, err, memberdomain.ErrUserNotFound)
}

func TestListAvailabilityLeaderOnly(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "lead@revenue.example", "Zo Quist", memberdomain.RoleCommitteeLeader)
	member := register(t, svc, "b@revenue.example", "bram holt", memberdomain.RoleCommitteeMember)
	register(t, svc, "c@revenue.example", "Ada Legrand", memberdomain.RoleCommitteeMember)
	require.NoError(t, svc.SetAvailability(context.Background(), member.ID, true))

	_, err := svc.ListAvailability(context.Background(), "b@revenue.example")
	assert.ErrorIs(t, err, memberdomain.ErrForbidden)

	list, err := svc.ListAvailability(context.Background(), "lead@revenue.example")
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Case-insensitive name order.
	assert.Equal(t, "Ada Legrand", list[0].FullName)
	assert.Equal(t, "bram holt", list[1].FullName)
	assert.Equal(t, "Zo Quist", list[2].FullName)

	assert.True(t, list[1].Available)
	assert.False(t, list[0].Available)
}
