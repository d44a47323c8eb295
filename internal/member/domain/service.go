package domain

import (
	"context"
	"time"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Response, error)
	GetByEmail(ctx context.Context, email string) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	ListAvailability(ctx context.Context, leaderEmail string) ([]Availability, error)
}

type RegisterRequest struct {
	Email          string         `json:"email"`
	FullName       string         `json:"full_name"`
	Title          string         `json:"title"`
	PhoneNumber    string         `json:"phone_number"`
	CommitteeGroup CommitteeGroup `json:"committee_group"`
	Role           Role           `json:"role"`
}

type UpdateRequest struct {
	FullName       *string         `json:"full_name,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Title          *string         `json:"title,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	CommitteeGroup *CommitteeGroup `json:"committee_group,omitempty"`
	Role           *Role           `json:"role,omitempty"`
}

type Response struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	FullName       string         `json:"full_name"`
	Title          string         `json:"title"`
	PhoneNumber    string         `json:"phone_number"`
	CommitteeGroup CommitteeGroup `json:"committee_group"`
	Role           Role           `json:"role"`
	Available      bool           `json:"available"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Availability is one row of the leader's attendance list.
type Availability struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Title     string `json:"title"`
	Role      Role   `json:"role"`
	Available bool   `json:"available"`
}
