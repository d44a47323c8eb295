package domain

import (
	"context"
	"time"
)

type Service interface {
	// SubmitVote records a vote and re-evaluates whether the owning case is
	// now fully resolved. Resolution is recomputed against current committee
	// availability on every call, never cached.
	SubmitVote(ctx context.Context, req SubmitVoteRequest) (*VoteResponse, error)
	// HasVotedOnAll reports, per requested appeal, whether the member has
	// already voted. Non-mutating.
	HasVotedOnAll(ctx context.Context, memberEmail string, appealIDs []string) (map[string]bool, error)
	// ListVotes is restricted to committee leaders.
	ListVotes(ctx context.Context, appealID, requesterEmail string) ([]VoteResponse, error)
	// AggregatedComment joins all non-blank vote comments for the appeal with
	// a blank line; empty string when none exist.
	AggregatedComment(ctx context.Context, appealID string) (string, error)
}

type SubmitVoteRequest struct {
	AppealID    string   `json:"appeal_id"`
	MemberEmail string   `json:"member_email"`
	Decision    Decision `json:"decision"`
	Comment     string   `json:"comment,omitempty"`
}

type VoteResponse struct {
	ID         string    `json:"id"`
	AppealID   string    `json:"appeal_id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Decision   Decision  `json:"decision"`
	Comment    string    `json:"comment,omitempty"`
	CastAt     time.Time `json:"cast_at"`
}
