package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	"github.com/revenuedesk/appealflow/internal/clock"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	votingdomain "github.com/revenuedesk/appealflow/internal/voting/domain"
	"github.com/revenuedesk/appealflow/pkg/db"
	"github.com/revenuedesk/appealflow/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Metrics      *telemetry.Metrics
	Votes        votingdomain.Repository
	Cases        casedomain.Repository
	Members      memberdomain.Repository
	StatusWriter casedomain.StatusWriter
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *telemetry.Metrics
	votes   votingdomain.Repository
	cases   casedomain.Repository
	members memberdomain.Repository
	status  casedomain.StatusWriter
}

func NewService(p ServiceParam) votingdomain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log,
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
		votes:   p.Votes,
		cases:   p.Cases,
		members: p.Members,
		status:  p.StatusWriter,
	}
}

func (s *service) SubmitVote(ctx context.Context, req votingdomain.SubmitVoteRequest) (*votingdomain.VoteResponse, error) {
	if !req.Decision.Valid() {
		return nil, votingdomain.ErrInvalidDecision
	}
	appealRef, err := snowflake.ParseString(req.AppealID)
	if err != nil {
		return nil, votingdomain.ErrAppealNotFound
	}

	member, err := s.members.FindByEmail(ctx, s.db, req.MemberEmail)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, memberdomain.ErrUserNotFound
	}

	var persisted *votingdomain.Vote
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appeal, err := s.cases.FindAppealPoint(ctx, tx, appealRef)
		if err != nil {
			return err
		}
		if appeal == nil {
			return votingdomain.ErrAppealNotFound
		}

		existing, err := s.votes.FindByAppealAndMember(ctx, tx, appealRef, member.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return votingdomain.ErrAlreadyVoted
		}

		vote := &votingdomain.Vote{
			ID:         s.genID.Generate(),
			AppealRef:  appealRef,
			MemberID:   member.ID,
			MemberName: member.FullName,
			Decision:   req.Decision,
			Comment:    req.Comment,
			CastAt:     s.clock.Now(),
		}
		if err := s.votes.Insert(ctx, tx, vote); err != nil {
			// The unique index is the authoritative guard; a concurrent
			// submission losing the race surfaces here.
			if db.IsDuplicateKeyErr(err) {
				return votingdomain.ErrAlreadyVoted
			}
			return err
		}
		persisted = vote

		return s.resolveIfQuorate(ctx, tx, appeal.CaseRef, member.CommitteeGroup)
	})
	if err != nil {
		if err == votingdomain.ErrAlreadyVoted {
			s.metrics.VoteRejected("already_voted")
		}
		return nil, err
	}

	s.metrics.VoteAccepted(string(persisted.Decision))
	return toResponse(persisted), nil
}

// resolveIfQuorate re-evaluates the owning case inside the vote transaction.
// Quorum size is the count of currently-available members of the voter's
// group, so resolvability tracks actual attendance; no resolved flag is ever
// cached on the appeal.
func (s *service) resolveIfQuorate(ctx context.Context, tx *gorm.DB, caseRef snowflake.ID, group memberdomain.CommitteeGroup) error {
	quorum, err := s.members.CountAvailable(ctx, tx, group)
	if err != nil {
		return err
	}
	if quorum == 0 {
		return nil
	}

	points, err := s.cases.AppealPointsByCase(ctx, tx, caseRef)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	for _, point := range points {
		count, err := s.votes.CountByAppeal(ctx, tx, point.ID)
		if err != nil {
			return err
		}
		if count < quorum {
			return nil
		}
	}

	changed, err := s.status.MarkResolved(ctx, tx, caseRef)
	if err != nil {
		return err
	}
	if changed {
		s.metrics.CaseResolved()
		s.log.Info("case resolved by committee vote",
			zap.String("case_ref", caseRef.String()),
			zap.Int64("quorum", quorum),
		)
	}
	return nil
}

func (s *service) HasVotedOnAll(ctx context.Context, memberEmail string, appealIDs []string) (map[string]bool, error) {
	member, err := s.members.FindByEmail(ctx, s.db, memberEmail)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, memberdomain.ErrUserNotFound
	}

	result := make(map[string]bool, len(appealIDs))
	for _, id := range appealIDs {
		appealRef, err := snowflake.ParseString(id)
		if err != nil {
			return nil, votingdomain.ErrAppealNotFound
		}
		appeal, err := s.cases.FindAppealPoint(ctx, s.db, appealRef)
		if err != nil {
			return nil, err
		}
		if appeal == nil {
			return nil, votingdomain.ErrAppealNotFound
		}
		vote, err := s.votes.FindByAppealAndMember(ctx, s.db, appealRef, member.ID)
		if err != nil {
			return nil, err
		}
		result[id] = vote != nil
	}
	return result, nil
}

func (s *service) ListVotes(ctx context.Context, appealID, requesterEmail string) ([]votingdomain.VoteResponse, error) {
	requester, err := s.members.FindByEmail(ctx, s.db, requesterEmail)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, memberdomain.ErrUserNotFound
	}
	if requester.Role != memberdomain.RoleCommitteeLeader {
		return nil, memberdomain.ErrForbidden
	}

	appealRef, err := snowflake.ParseString(appealID)
	if err != nil {
		return nil, votingdomain.ErrAppealNotFound
	}
	appeal, err := s.cases.FindAppealPoint(ctx, s.db, appealRef)
	if err != nil {
		return nil, err
	}
	if appeal == nil {
		return nil, votingdomain.ErrAppealNotFound
	}

	votes, err := s.votes.ListByAppeal(ctx, s.db, appealRef)
	if err != nil {
		return nil, err
	}
	out := make([]votingdomain.VoteResponse, 0, len(votes))
	for i := range votes {
		out = append(out, *toResponse(&votes[i]))
	}
	return out, nil
}

func (s *service) AggregatedComment(ctx context.Context, appealID string) (string, error) {
	appealRef, err := snowflake.ParseString(appealID)
	if err != nil {
		return "", votingdomain.ErrAppealNotFound
	}
	appeal, err := s.cases.FindAppealPoint(ctx, s.db, appealRef)
	if err != nil {
		return "", err
	}
	if appeal == nil {
		return "", votingdomain.ErrAppealNotFound
	}

	votes, err := s.votes.ListByAppeal(ctx, s.db, appealRef)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, vote := range votes {
		comment := strings.TrimSpace(vote.Comment)
		if comment == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(comment)
	}
	return strings.TrimSpace(b.String()), nil
}

func toResponse(v *votingdomain.Vote) *votingdomain.VoteResponse {
	return &votingdomain.VoteResponse{
		ID:         v.ID.String(),
		AppealID:   v.AppealRef.String(),
		MemberID:   v.MemberID.String(),
		MemberName: v.MemberName,
		Decision:   v.Decision,
		Comment:    v.Comment,
		CastAt:     v.CastAt,
	}
}
