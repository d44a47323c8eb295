package domain

import (
	"context"
	"errors"
	"time"
)

var ErrMeetingNotFound = errors.New("meeting_not_found")

type Service interface {
	Schedule(ctx context.Context, venue, meetingTime string) (*Response, error)
	Update(ctx context.Context, id, venue, meetingTime string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}

type Response struct {
	ID          string    `json:"id"`
	Venue       string    `json:"venue"`
	MeetingTime string    `json:"meeting_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
