package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	"github.com/revenuedesk/appealflow/internal/clock"
	"github.com/revenuedesk/appealflow/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Metrics    *telemetry.Metrics
	Repository casedomain.Repository
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *telemetry.Metrics
	repo    casedomain.Repository
}

func NewService(p ServiceParam) casedomain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log,
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
		repo:    p.Repository,
	}
}

// NewStatusWriter exposes the idempotent resolution write to the voting engine.
func NewStatusWriter(p ServiceParam) casedomain.StatusWriter {
	return &service{
		db:      p.DB,
		log:     p.Log,
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
		repo:    p.Repository,
	}
}

func (s *service) Create(ctx context.Context, req casedomain.CreateCaseRequest, preparerEmail string) (*casedomain.CaseResponse, error) {
	now := s.clock.Now()
	if !req.AppealExpireDate.After(now) {
		return nil, casedomain.ErrExpiryNotFuture
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.ExistsByCaseID(ctx, tx, req.CaseID)
		if err != nil {
			return err
		}
		if exists {
			return casedomain.ErrDuplicateCase
		}
		return s.createSubtree(ctx, tx, req, preparerEmail, casedomain.StatusSubmitted, now)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CaseCreated()
	s.log.Info("case submitted",
		zap.String("case_id", req.CaseID),
		zap.String("preparer", preparerEmail),
	)
	return s.GetByCaseID(ctx, req.CaseID)
}

// Replace is content-replacing and status-preserving: the subtree is deleted
// and recreated inside one transaction, then the prior workflow position is
// restored onto both status records. Concurrent readers may observe the
// transient delete depending on store isolation level.
func (s *service) Replace(ctx context.Context, caseID string, req casedomain.CreateCaseRequest, preparerEmail string) (*casedomain.CaseResponse, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByCaseID(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if existing == nil {
			return casedomain.ErrCaseNotFound
		}
		priorStatus := existing.Status

		if err := s.repo.DeleteSubtree(ctx, tx, existing.ID, existing.CaseID); err != nil {
			return err
		}

		replacement := req
		replacement.CaseID = caseID
		if err := s.createSubtree(ctx, tx, replacement, preparerEmail, priorStatus, s.clock.Now()); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("case replaced", zap.String("case_id", caseID))
	return s.GetByCaseID(ctx, caseID)
}

func (s *service) Delete(ctx context.Context, caseID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByCaseID(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if existing == nil {
			return casedomain.ErrCaseNotFound
		}
		return s.repo.DeleteSubtree(ctx, tx, existing.ID, existing.CaseID)
	})
	if err != nil {
		return err
	}

	s.log.Info("case deleted", zap.String("case_id", caseID))
	return nil
}

func (s *service) GetByCaseID(ctx context.Context, caseID string) (*casedomain.CaseResponse, error) {
	c, err := s.repo.FindByCaseID(ctx, s.db, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, casedomain.ErrCaseNotFound
	}

	items, err := s.repo.TaxItemsByCase(ctx, s.db, c.ID)
	if err != nil {
		return nil, err
	}
	points, err := s.repo.AppealPointsByCase(ctx, s.db, c.ID)
	if err != nil {
		return nil, err
	}

	pointsByItem := make(map[snowflake.ID][]casedomain.AppealPointResponse, len(items))
	for _, p := range points {
		pointsByItem[p.TaxItemRef] = append(pointsByItem[p.TaxItemRef], casedomain.AppealPointResponse{
			ID:                p.ID.String(),
			AppealText:        p.AppealText,
			SummarizedProblem: p.SummarizedProblem,
			AuditorOpinion:    p.AuditorOpinion,
			ProposedSolution:  p.ProposedSolution,
		})
	}

	itemResponses := make([]casedomain.TaxItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, casedomain.TaxItemResponse{
			ID:                       item.ID.String(),
			TaxType:                  item.TaxType,
			PrincipalAmount:          item.PrincipalAmount,
			UnderstatementFines:      item.UnderstatementFines,
			FixedAdministrativeFines: item.FixedAdministrativeFines,
			DischargedAmount:         item.DischargedAmount,
			OtherFines:               item.OtherFines,
			TotalTaxAndFines:         item.TotalTaxAndFines,
			AppealPoints:             pointsByItem[item.ID],
		})
	}

	return &casedomain.CaseResponse{
		CaseID:              c.CaseID,
		AuditorNames:        c.AuditorNames,
		AcknowledgementDate: c.AcknowledgementDate,
		AssessmentTime:      c.AssessmentTime,
		AppealDate:          c.AppealDate,
		AppealExpireDate:    c.AppealExpireDate,
		Presenter:           c.Presenter,
		TIN:                 c.TIN,
		AttachmentLink:      c.AttachmentLink,
		PreparerEmail:       c.PreparerEmail,
		SubmissionDate:      c.SubmissionDate,
		Status:              c.Status,
		TaxItems:            itemResponses,
	}, nil
}

func (s *service) MoveToAgenda(ctx context.Context, caseID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByCaseID(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if existing == nil {
			return casedomain.ErrCaseNotFound
		}
		if existing.Status != casedomain.StatusPreAppeal {
			return casedomain.ErrInvalidTransition
		}
		return s.repo.UpdateStatus(ctx, tx, caseID, casedomain.StatusReadyForAgenda)
	})
}

func (s *service) MoveToPreAppeal(ctx context.Context, caseID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByCaseID(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if existing == nil {
			return casedomain.ErrCaseNotFound
		}
		return s.repo.UpdateStatus(ctx, tx, caseID, casedomain.StatusPreAppeal)
	})
}

// MarkResolved implements casedomain.StatusWriter. It runs on the caller's
// transaction so the resolution write commits atomically with the vote that
// triggered it.
func (s *service) MarkResolved(ctx context.Context, tx *gorm.DB, caseRef snowflake.ID) (bool, error) {
	existing, err := s.repo.FindByRef(ctx, tx, caseRef)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, casedomain.ErrCaseNotFound
	}
	if existing.Status == casedomain.StatusResolved {
		return false, nil
	}
	if err := s.repo.UpdateStatus(ctx, tx, existing.CaseID, casedomain.StatusResolved); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) createSubtree(ctx context.Context, tx *gorm.DB, req casedomain.CreateCaseRequest, preparerEmail string, status casedomain.CaseStatus, now time.Time) error {
	c := &casedomain.Case{
		ID:                  s.genID.Generate(),
		CaseID:              req.CaseID,
		AuditorNames:        req.AuditorNames,
		AcknowledgementDate: req.AcknowledgementDate,
		AssessmentTime:      req.AssessmentTime,
		AppealDate:          req.AppealDate,
		AppealExpireDate:    req.AppealExpireDate,
		Presenter:           req.Presenter,
		TIN:                 req.TIN,
		AttachmentLink:      req.AttachmentLink,
		PreparerEmail:       preparerEmail,
		SubmissionDate:      now,
		Status:              status,
		Metadata:            datatypes.JSONMap(req.Metadata),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.InsertCase(ctx, tx, c); err != nil {
		return err
	}

	for _, itemInput := range req.TaxItems {
		item := casedomain.TaxItem{
			ID:                       s.genID.Generate(),
			CaseRef:                  c.ID,
			TaxType:                  itemInput.TaxType,
			PrincipalAmount:          itemInput.PrincipalAmount,
			UnderstatementFines:      itemInput.UnderstatementFines,
			FixedAdministrativeFines: itemInput.FixedAdministrativeFines,
			DischargedAmount:         itemInput.DischargedAmount,
			OtherFines:               itemInput.OtherFines,
			TotalTaxAndFines:         itemInput.TotalTaxAndFines,
		}
		if err := s.repo.InsertTaxItems(ctx, tx, []casedomain.TaxItem{item}); err != nil {
			return err
		}

		points := make([]casedomain.AppealPoint, 0, len(itemInput.AppealPoints))
		for _, pointInput := range itemInput.AppealPoints {
			points = append(points, casedomain.AppealPoint{
				ID:                s.genID.Generate(),
				TaxItemRef:        item.ID,
				CaseRef:           c.ID,
				AppealText:        pointInput.AppealText,
				SummarizedProblem: pointInput.SummarizedProblem,
				AuditorOpinion:    pointInput.AuditorOpinion,
				ProposedSolution:  pointInput.ProposedSolution,
			})
		}
		if err := s.repo.InsertAppealPoints(ctx, tx, points); err != nil {
			return err
		}
	}

	tracking := &casedomain.CaseTracking{
		ID:        s.genID.Generate(),
		CaseID:    c.CaseID,
		Preparer:  preparerEmail,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.InsertTracking(ctx, tx, tracking)
}
