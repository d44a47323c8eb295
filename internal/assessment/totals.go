// Package assessment computes discharged and assessed totals for a case.
package assessment

import (
	"errors"

	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
)

// ErrNegativeBalance signals discharged amounts exceeding assessed amounts.
// This is upstream data corruption, not a business rejection; callers must
// surface it, never clamp it away.
var ErrNegativeBalance = errors.New("negative_balance")

// Totals are the aggregated amounts over a case's tax items, in minor units.
type Totals struct {
	Discharged int64 `json:"discharged"`
	Assessed   int64 `json:"assessed"`
	Due        int64 `json:"due"`
}

// Compute sums discharged and assessed amounts over items and derives the
// amount due. Returns ErrNegativeBalance when due would be negative.
func Compute(items []casedomain.TaxItem) (Totals, error) {
	var t Totals
	for _, item := range items {
		t.Discharged += item.DischargedAmount
		t.Assessed += item.TotalTaxAndFines
	}
	t.Due = t.Assessed - t.Discharged
	if t.Due < 0 {
		return Totals{}, ErrNegativeBalance
	}
	return t, nil
}
