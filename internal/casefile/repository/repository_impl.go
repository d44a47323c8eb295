package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() casedomain.Repository {
	return &repository{}
}

func (r *repository) InsertCase(ctx context.Context, db *gorm.DB, c *casedomain.Case) error {
	return db.WithContext(ctx).Create(c).Error
}

func (r *repository) InsertTracking(ctx context.Context, db *gorm.DB, t *casedomain.CaseTracking) error {
	return db.WithContext(ctx).Create(t).Error
}

func (r *repository) InsertTaxItems(ctx context.Context, db *gorm.DB, items []casedomain.TaxItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repository) InsertAppealPoints(ctx context.Context, db *gorm.DB, points []casedomain.AppealPoint) error {
	if len(points) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&points).Error
}

func (r *repository) ExistsByCaseID(ctx context.Context, db *gorm.DB, caseID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&casedomain.Case{}).
		Where("case_id = ?", caseID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByCaseID(ctx context.Context, db *gorm.DB, caseID string) (*casedomain.Case, error) {
	var c casedomain.Case
	err := db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Take(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByRef(ctx context.Context, db *gorm.DB, ref snowflake.ID) (*casedomain.Case, error) {
	var c casedomain.Case
	err := db.WithContext(ctx).
		Where("id = ?", ref).
		Take(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindTracking(ctx context.Context, db *gorm.DB, caseID string) (*casedomain.CaseTracking, error) {
	var t casedomain.CaseTracking
	err := db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Take(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAppealPoint(ctx context.Context, db *gorm.DB, id snowflake.ID) (*casedomain.AppealPoint, error) {
	var point casedomain.AppealPoint
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&point).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &point, nil
}

func (r *repository) TaxItemsByCase(ctx context.Context, db *gorm.DB, caseRef snowflake.ID) ([]casedomain.TaxItem, error) {
	var items []casedomain.TaxItem
	err := db.WithContext(ctx).
		Where("case_ref = ?", caseRef).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) AppealPointsByCase(ctx context.Context, db *gorm.DB, caseRef snowflake.ID) ([]casedomain.AppealPoint, error) {
	var points []casedomain.AppealPoint
	err := db.WithContext(ctx).
		Where("case_ref = ?", caseRef).
		Order("id ASC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repository) ListByStatuses(ctx context.Context, db *gorm.DB, statuses []casedomain.CaseStatus, limit, offset int) ([]casedomain.Case, error) {
	var cases []casedomain.Case
	err := db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("appeal_expire_date ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repository) CountByStatuses(ctx context.Context, db *gorm.DB, statuses []casedomain.CaseStatus) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&casedomain.Case{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

func (r *repository) ListByStatusAndPreparer(ctx context.Context, db *gorm.DB, status casedomain.CaseStatus, preparer string, limit, offset int) ([]casedomain.Case, error) {
	var cases []casedomain.Case
	err := db.WithContext(ctx).
		Where("status = ? AND preparer_email = ?", status, preparer).
		Order("appeal_expire_date ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repository) CountByStatusAndPreparer(ctx context.Context, db *gorm.DB, status casedomain.CaseStatus, preparer string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&casedomain.Case{}).
		Where("status = ? AND preparer_email = ?", status, preparer).
		Count(&count).Error
	return count, err
}

func (r *repository) ListTrackingByPreparer(ctx context.Context, db *gorm.DB, preparer string) ([]casedomain.CaseTracking, error) {
	var records []casedomain.CaseTracking
	err := db.WithContext(ctx).
		Where("preparer = ?", preparer).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) CountTracking(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&casedomain.CaseTracking{}).
		Count(&count).Error
	return count, err
}

func (r *repository) CountTrackingByStatus(ctx context.Context, db *gorm.DB, status casedomain.CaseStatus) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&casedomain.CaseTracking{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) UpdateStatus(ctx context.Context, db *gorm.DB, caseID string, status casedomain.CaseStatus) error {
	if err := db.WithContext(ctx).Exec(
		`UPDATE cases SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE case_id = ?`,
		status,
		caseID,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`UPDATE case_trackings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE case_id = ?`,
		status,
		caseID,
	).Error
}

func (r *repository) DeleteSubtree(ctx context.Context, db *gorm.DB, caseRef snowflake.ID, caseID string) error {
	// Children first: votes, appeal points, tax items, tracking, case.
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM votes WHERE appeal_ref IN (SELECT id FROM appeal_points WHERE case_ref = ?)`,
		caseRef,
	).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM appeal_points WHERE case_ref = ?`, caseRef,
	).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM tax_items WHERE case_ref = ?`, caseRef,
	).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM case_trackings WHERE case_id = ?`, caseID,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM cases WHERE id = ?`, caseRef,
	).Error
}
