package service

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/revenuedesk/appealflow/internal/clock"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repository memberdomain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  memberdomain.Repository
}

func NewService(p ServiceParam) memberdomain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repository,
	}
}

func (s *service) Register(ctx context.Context, req memberdomain.RegisterRequest) (*memberdomain.Response, error) {
	role := req.Role
	if role == "" {
		role = memberdomain.RoleCommitteeMember
	}
	if role != memberdomain.RoleCommitteeLeader && role != memberdomain.RoleCommitteeMember {
		return nil, memberdomain.ErrInvalidRole
	}

	now := s.clock.Now()
	member := &memberdomain.Member{
		ID:             s.genID.Generate(),
		Email:          strings.TrimSpace(req.Email),
		FullName:       req.FullName,
		Title:          req.Title,
		PhoneNumber:    req.PhoneNumber,
		CommitteeGroup: req.CommitteeGroup,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, s.db, member); err != nil {
		return nil, err
	}
	return toResponse(member), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*memberdomain.Response, error) {
	member, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, memberdomain.ErrUserNotFound
	}
	return toResponse(member), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*memberdomain.Response, error) {
	memberID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, memberdomain.ErrUserNotFound
	}
	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, memberdomain.ErrUserNotFound
	}
	return toResponse(member), nil
}

func (s *service) Update(ctx context.Context, id string, req memberdomain.UpdateRequest) (*memberdomain.Response, error) {
	memberID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, memberdomain.ErrUserNotFound
	}

	var updated *memberdomain.Member
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := s.repo.FindByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return memberdomain.ErrUserNotFound
		}

		if req.FullName != nil && strings.TrimSpace(*req.FullName) != "" {
			member.FullName = *req.FullName
		}
		if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
			member.Email = *req.Email
		}
		if req.Title != nil {
			member.Title = *req.Title
		}
		if req.PhoneNumber != nil {
			member.PhoneNumber = *req.PhoneNumber
		}
		if req.CommitteeGroup != nil && strings.TrimSpace(string(*req.CommitteeGroup)) != "" {
			member.CommitteeGroup = *req.CommitteeGroup
		}
		if req.Role != nil {
			if *req.Role != memberdomain.RoleCommitteeLeader && *req.Role != memberdomain.RoleCommitteeMember {
				return memberdomain.ErrInvalidRole
			}
			member.Role = *req.Role
		}
		member.UpdatedAt = s.clock.Now()

		if err := s.repo.Update(ctx, tx, member); err != nil {
			return err
		}
		updated = member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

func (s *service) SetAvailability(ctx context.Context, id string, available bool) error {
	memberID, err := snowflake.ParseString(id)
	if err != nil {
		return memberdomain.ErrUserNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := s.repo.FindByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return memberdomain.ErrUserNotFound
		}
		return s.repo.SetAvailability(ctx, tx, memberID, available)
	})
}

func (s *service) ListAvailability(ctx context.Context, leaderEmail string) ([]memberdomain.Availability, error) {
	leader, err := s.repo.FindByEmail(ctx, s.db, leaderEmail)
	if err != nil {
		return nil, err
	}
	if leader == nil {
		return nil, memberdomain.ErrUserNotFound
	}
	if leader.Role != memberdomain.RoleCommitteeLeader {
		return nil, memberdomain.ErrForbidden
	}

	members, err := s.repo.ListByGroup(ctx, s.db, leader.CommitteeGroup)
	if err != nil {
		return nil, err
	}

	out := make([]memberdomain.Availability, 0, len(members))
	for _, m := range members {
		out = append(out, memberdomain.Availability{
			ID:        m.ID.String(),
			FullName:  m.FullName,
			Title:     m.Title,
			Role:      m.Role,
			Available: m.Available,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].FullName) < strings.ToLower(out[j].FullName)
	})
	return out, nil
}

func toResponse(m *memberdomain.Member) *memberdomain.Response {
	return &memberdomain.Response{
		ID:             m.ID.String(),
		Email:          m.Email,
		FullName:       m.FullName,
		Title:          m.Title,
		PhoneNumber:    m.PhoneNumber,
		CommitteeGroup: m.CommitteeGroup,
		Role:           m.Role,
		Available:      m.Available,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
