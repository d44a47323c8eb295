package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the case store. Methods take the gorm handle so the service
// layer owns the transaction boundary; a whole lifecycle operation runs on
// one transaction or not at all.
type Repository interface {
	InsertCase(ctx context.Context, db *gorm.DB, c *Case) error
	InsertTracking(ctx context.Context, db *gorm.DB, t *CaseTracking) error
	InsertTaxItems(ctx context.Context, db *gorm.DB, items []TaxItem) error
	InsertAppealPoints(ctx context.Context, db *gorm.DB, points []AppealPoint) error

	ExistsByCaseID(ctx context.Context, db *gorm.DB, caseID string) (bool, error)
	FindByCaseID(ctx context.Context, db *gorm.DB, caseID string) (*Case, error)
	FindByRef(ctx context.Context, db *gorm.DB, ref snowflake.ID) (*Case, error)
	FindTracking(ctx context.Context, db *gorm.DB, caseID string) (*CaseTracking, error)
	FindAppealPoint(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AppealPoint, error)

	TaxItemsByCase(ctx context.Context, db *gorm.DB, caseRef snowflake.ID) ([]TaxItem, error)
	AppealPointsByCase(ctx context.Context, db *gorm.DB, caseRef snowflake.ID) ([]AppealPoint, error)

	ListByStatuses(ctx context.Context, db *gorm.DB, statuses []CaseStatus, limit, offset int) ([]Case, error)
	CountByStatuses(ctx context.Context, db *gorm.DB, statuses []CaseStatus) (int64, error)
	ListByStatusAndPreparer(ctx context.Context, db *gorm.DB, status CaseStatus, preparer string, limit, offset int) ([]Case, error)
	CountByStatusAndPreparer(ctx context.Context, db *gorm.DB, status CaseStatus, preparer string) (int64, error)

	ListTrackingByPreparer(ctx context.Context, db *gorm.DB, preparer string) ([]CaseTracking, error)
	CountTracking(ctx context.Context, db *gorm.DB) (int64, error)
	CountTrackingByStatus(ctx context.Context, db *gorm.DB, status CaseStatus) (int64, error)

	// UpdateStatus writes the same status to the case row and its tracking
	// mirror; the two must never diverge.
	UpdateStatus(ctx context.Context, db *gorm.DB, caseID string, status CaseStatus) error

	// DeleteSubtree removes votes, appeal points, tax items, the tracking
	// record, and finally the case row, children first.
	DeleteSubtree(ctx context.Context, db *gorm.DB, caseRef snowflake.ID, caseID string) error
}

// StatusWriter applies lifecycle status writes inside a caller-owned
// transaction. The voting engine resolves cases through this, never by a
// manual transition path.
type StatusWriter interface {
	// MarkResolved sets the case and its tracking mirror to RESOLVED.
	// Idempotent: resolving an already-resolved case reports false, nil.
	MarkResolved(ctx context.Context, tx *gorm.DB, caseRef snowflake.ID) (bool, error)
}
