package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avdeyev/shelfkeeper/internal/client/models"
)

func (a *App) fetchSummary(ctx context.Context) (*models.ReportSummary, error) {
	data, err := a.api.Get(ctx, "/api/reports", "summary")
	if err != nil {
		return nil, err
	}
	var summary models.ReportSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// reportsScreen prints the aggregate counts and the overdue list.
func (a *App) reportsScreen(ctx context.Context) error {
	summary, err := a.fetchSummary(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error loading report: %v\n", err)
		return nil
	}

	fmt.Fprintln(a.out, "=== Library report ===")
	fmt.Fprintf(a.out, "Books:           %d\n", summary.Books)
	fmt.Fprintf(a.out, "Members:         %d\n", summary.Members)
	fmt.Fprintf(a.out, "Active lendings: %d\n", summary.ActiveLendings)
	fmt.Fprintf(a.out, "Overdue:         %d\n", summary.OverdueCount)

	if summary.OverdueCount > 0 {
		fmt.Fprintln(a.out, "--- Overdue lendings ---")
		if err := a.listLendings(ctx, lendingsEndpoint+"/overdue"); err != nil {
			fmt.Fprintf(a.out, "Error loading overdue list: %v\n", err)
		}
	}
	return nil
}
