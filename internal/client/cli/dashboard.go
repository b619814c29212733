package cli

import (
	"context"
	"fmt"
)

func (a *App) adminDashboard(ctx context.Context) error {
	user := a.session.CurrentUser()
	fmt.Fprintf(a.out, "=== Admin dashboard: %s ===\n", user.Fullname)
	a.printSummary(ctx)
	fmt.Fprintln(a.out, "Screens: books, categories, publishers, members, users, lendings, reports, profile")
	return nil
}

func (a *App) librarianDashboard(ctx context.Context) error {
	user := a.session.CurrentUser()
	fmt.Fprintf(a.out, "=== Librarian dashboard: %s ===\n", user.Fullname)
	a.printSummary(ctx)
	fmt.Fprintln(a.out, "Screens: books, categories, publishers, members, lendings, reports, profile")
	return nil
}

func (a *App) studentDashboard(ctx context.Context) error {
	user := a.session.CurrentUser()
	fmt.Fprintf(a.out, "=== Student dashboard: %s ===\n", user.Fullname)
	fmt.Fprintln(a.out, "Screens: catalog, loans, profile")
	return nil
}

// printSummary shows the aggregate counts on staff dashboards. A failed
// fetch degrades to a note; the dashboard still renders.
func (a *App) printSummary(ctx context.Context) {
	summary, err := a.fetchSummary(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "(summary unavailable: %v)\n", err)
		return
	}
	fmt.Fprintf(a.out, "Books: %d  Members: %d  Active lendings: %d  Overdue: %d\n",
		summary.Books, summary.Members, summary.ActiveLendings, summary.OverdueCount)
}
