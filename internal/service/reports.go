package service

import (
	"context"
	"errors"
	"fmt"

	"fieldbattle/internal/report"
)

var ErrNoStore = errors.New("runner has no store")

// ReportsFor returns the stored reports of a game turn in which nation
// fought, oldest first.
func (r *Runner) ReportsFor(ctx context.Context, gameID, turn, nation int) ([]report.Report, error) {
	if r.store == nil {
		return nil, ErrNoStore
	}
	rows, err := r.store.ListReports(ctx, gameID, turn)
	if err != nil {
		return nil, err
	}
	var out []report.Report
	for _, row := range rows {
		full, err := r.store.LoadReport(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		rep, err := report.Decode(full.Data)
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", row.ID, err)
		}
		if rep.Involves(nation) {
			out = append(out, rep)
		}
	}
	return out, nil
}
