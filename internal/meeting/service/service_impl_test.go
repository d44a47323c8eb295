package service

import (
	"context"
	"testing"
	"time"

	"github.com/revenuedesk/appealflow/internal/clock"
	meetingdomain "github.com/revenuedesk/appealflow/internal/meeting/domain"
	"github.com/revenuedesk/appealflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (meetingdomain.Service, *clock.FakeClock) {
	t.Helper()

	fc := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := NewService(ServiceParam{
		DB:    testutil.OpenDB(t),
		Log:   zap.NewNop(),
		GenID: testutil.Node(t),
		Clock: fc,
	})
	return svc, fc
}

func TestScheduleAndList(t *testing.T) {
	svc, fc := newTestService(t)

	first, err := svc.Schedule(context.Background(), "Hall B", "2026-03-15 10:00")
	require.NoError(t, err)
	assert.Equal(t, "Hall B", first.Venue)

	fc.Advance(time.Hour)
	_, err = svc.Schedule(context.Background(), "Hall C", "2026-03-22 10:00")
	require.NoError(t, err)

	meetings, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, meetings, 2)

	// Most recently scheduled first.
	assert.Equal(t, "Hall C", meetings[0].Venue)
	assert.Equal(t, "Hall B", meetings[1].Venue)
}

func TestUpdateMeeting(t *testing.T) {
	svc, fc := newTestService(t)

	created, err := svc.Schedule(context.Background(), "Hall B", "2026-03-15 10:00")
	require.NoError(t, err)

	fc.Advance(time.Hour)
	updated, err := svc.Update(context.Background(), created.ID, "Annex Room 2", "2026-03-16 14:00")
	require.NoError(t, err)
	assert.Equal(t, "Annex Room 2", updated.Venue)
	assert.Equal(t, "2026-03-16 14:00", updated.MeetingTime)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = svc.Update(context.Background(), "987654321", "Hall B", "2026-03-15 10:00")
	assert.ErrorIs(t, err, meetingdomain.ErrMeetingNotFound)
}
