package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/revenuedesk/appealflow/internal/clock"
	meetingdomain "github.com/revenuedesk/appealflow/internal/meeting/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(p ServiceParam) meetingdomain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *service) Schedule(ctx context.Context, venue, meetingTime string) (*meetingdomain.Response, error) {
	now := s.clock.Now()
	meeting := &meetingdomain.Meeting{
		ID:          s.genID.Generate(),
		Venue:       venue,
		MeetingTime: meetingTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return nil, err
	}
	s.log.Info("meeting scheduled", zap.String("venue", venue), zap.String("time", meetingTime))
	return toResponse(meeting), nil
}

func (s *service) Update(ctx context.Context, id, venue, meetingTime string) (*meetingdomain.Response, error) {
	meetingID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, meetingdomain.ErrMeetingNotFound
	}

	var meeting meetingdomain.Meeting
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", meetingID).Take(&meeting).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return meetingdomain.ErrMeetingNotFound
			}
			return err
		}
		meeting.Venue = venue
		meeting.MeetingTime = meetingTime
		meeting.UpdatedAt = s.clock.Now()
		return tx.Exec(
			`UPDATE meetings SET venue = ?, meeting_time = ?, updated_at = ? WHERE id = ?`,
			meeting.Venue,
			meeting.MeetingTime,
			meeting.UpdatedAt,
			meeting.ID,
		).Error
	})
	if err != nil {
		return nil, err
	}
	return toResponse(&meeting), nil
}

func (s *service) List(ctx context.Context) ([]meetingdomain.Response, error) {
	var meetings []meetingdomain.Meeting
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&meetings).Error; err != nil {
		return nil, err
	}
	out := make([]meetingdomain.Response, 0, len(meetings))
	for i := range meetings {
		out = append(out, *toResponse(&meetings[i]))
	}
	return out, nil
}

func toResponse(m *meetingdomain.Meeting) *meetingdomain.Response {
	return &meetingdomain.Response{
		ID:          m.ID.String(),
		Venue:       m.Venue,
		MeetingTime: m.MeetingTime,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
