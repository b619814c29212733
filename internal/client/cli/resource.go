package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// resourceScreen is the generic "list + form" screen the management pages
// share: one endpoint, a title, the columns to print, and the fields the
// add form collects. The backend interprets the submitted fields; the
// screen stays schema-agnostic.
type resourceScreen struct {
	title    string
	endpoint string
	columns  []string
	fields   []string
}

var (
	booksScreen = resourceScreen{
		title:    "Books",
		endpoint: "/api/books",
		columns:  []string{"id", "title", "author", "isbn", "available"},
		fields:   []string{"title", "author", "isbn", "category_id", "publisher_id", "copies"},
	}
	categoriesScreen = resourceScreen{
		title:    "Categories",
		endpoint: "/api/categories",
		columns:  []string{"id", "name"},
		fields:   []string{"name"},
	}
	publishersScreen = resourceScreen{
		title:    "Publishers",
		endpoint: "/api/publishers",
		columns:  []string{"id", "name", "city"},
		fields:   []string{"name", "city"},
	}
	membersScreen = resourceScreen{
		title:    "Members",
		endpoint: "/api/members",
		columns:  []string{"id", "fullname", "email", "grade"},
		fields:   []string{"fullname", "email", "grade"},
	}
	usersScreen = resourceScreen{
		title:    "Users",
		endpoint: "/api/users",
		columns:  []string{"id", "fullname", "username", "email", "role"},
		fields:   []string{"fullname", "username", "email", "role"},
	}
)

// runResource renders the list and loops on the screen's local actions
// until the user goes back. Request errors are printed and the loop
// continues; they never escape the screen.
func (a *App) runResource(ctx context.Context, rs resourceScreen) error {
	for {
		if err := a.listResource(ctx, rs); err != nil {
			fmt.Fprintf(a.out, "Error loading %s: %v\n", strings.ToLower(rs.title), err)
		}

		action, err := getSimpleText(a.reader, "(a)dd, (d)elete <id>, (r)efresh, (b)ack", a.out)
		if err != nil {
			return err
		}

		parts := strings.Fields(action)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "a", "add":
			if err := a.addResource(ctx, rs); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
		case "d", "delete":
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage: d <id>")
				continue
			}
			if err := a.api.Delete(ctx, rs.endpoint, parts[1]); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			} else {
				fmt.Fprintln(a.out, "Deleted.")
			}
		case "r", "refresh":
			continue
		case "b", "back":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown action:", parts[0])
		}
	}
}

func (a *App) listResource(ctx context.Context, rs resourceScreen) error {
	items, err := a.api.List(ctx, rs.endpoint)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "=== %s (%d) ===\n", rs.title, len(items))
	fmt.Fprintln(a.out, strings.Join(rs.columns, " | "))
	for _, raw := range items {
		var record map[string]any
		if err := json.Unmarshal(raw, &record); err != nil {
			continue
		}
		values := make([]string, len(rs.columns))
		for i, col := range rs.columns {
			values[i] = formatValue(record[col])
		}
		fmt.Fprintln(a.out, strings.Join(values, " | "))
	}
	return nil
}

func (a *App) addResource(ctx context.Context, rs resourceScreen) error {
	record := make(map[string]any, len(rs.fields))
	for _, field := range rs.fields {
		value, err := getSimpleText(a.reader, field, a.out)
		if err != nil {
			return err
		}
		if value != "" {
			record[field] = value
		}
	}
	if _, err := a.api.Create(ctx, rs.endpoint, record); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created.")
	return nil
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
