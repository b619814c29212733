package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avdeyev/shelfkeeper/internal/client/models"
)

const lendingsEndpoint = "/api/lendings"

// lendingsScreen is the staff view: every lending, plus borrow and return
// actions.
func (a *App) lendingsScreen(ctx context.Context) error {
	for {
		if err := a.listLendings(ctx, lendingsEndpoint); err != nil {
			fmt.Fprintf(a.out, "Error loading lendings: %v\n", err)
		}

		action, err := getSimpleText(a.reader, "(b)orrow, (ret)urn <id>, (r)efresh, (q) back", a.out)
		if err != nil {
			return err
		}

		parts := strings.Fields(action)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "b", "borrow":
			if err := a.borrow(ctx); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
		case "ret", "return":
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage: ret <id>")
				continue
			}
			body := map[string]string{"status": models.LendingStatusReturned}
			if _, err := a.api.Update(ctx, lendingsEndpoint, parts[1], body); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			} else {
				fmt.Fprintln(a.out, "Returned.")
			}
		case "r", "refresh":
			continue
		case "q", "back":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown action:", parts[0])
		}
	}
}

// myLoansScreen is the student view of their own lendings, read-only.
func (a *App) myLoansScreen(ctx context.Context) error {
	return a.listLendings(ctx, lendingsEndpoint+"/mine")
}

func (a *App) borrow(ctx context.Context) error {
	bookID, err := getSimpleText(a.reader, "Book id", a.out)
	if err != nil {
		return err
	}
	memberID, err := getSimpleText(a.reader, "Member id", a.out)
	if err != nil {
		return err
	}
	body := map[string]string{"book_id": bookID, "member_id": memberID}
	if _, err := a.api.Create(ctx, lendingsEndpoint, body); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Borrowed.")
	return nil
}

func (a *App) listLendings(ctx context.Context, endpoint string) error {
	items, err := a.api.List(ctx, endpoint)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "=== Lendings (%d) ===\n", len(items))
	for _, raw := range items {
		var l models.Lending
		if err := json.Unmarshal(raw, &l); err != nil {
			continue
		}
		line := fmt.Sprintf("%s | %s | %s | due %s", l.ID, l.BookTitle, l.Status, l.DueAt.Format("2006-01-02"))
		if l.MemberName != "" {
			line += " | " + l.MemberName
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
