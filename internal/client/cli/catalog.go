package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avdeyev/shelfkeeper/internal/client/models"
)

// catalogScreen is the read-only book list every authenticated role sees.
func (a *App) catalogScreen(ctx context.Context) error {
	items, err := a.api.List(ctx, "/api/books")
	if err != nil {
		fmt.Fprintf(a.out, "Error loading catalog: %v\n", err)
		return nil
	}

	fmt.Fprintf(a.out, "=== Catalog (%d) ===\n", len(items))
	for _, raw := range items {
		var b models.Book
		if err := json.Unmarshal(raw, &b); err != nil {
			continue
		}
		fmt.Fprintf(a.out, "%s | %s | %s | %d of %d available\n",
			b.ID, b.Title, b.Author, b.Available, b.Copies)
	}
	return nil
}
