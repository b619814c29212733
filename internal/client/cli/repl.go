package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avdeyev/shelfkeeper/internal/client/guard"
	"github.com/avdeyev/shelfkeeper/internal/client/session"
)

// statusLine summarizes the session for the prompt, e.g. "(alice admin)".
func (a *App) statusLine() string {
	user := a.session.CurrentUser()
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Username, user.Role)
}

// commandRoutes maps REPL shortcuts to route paths. Access is not decided
// here; every entry still goes through the guard on Open.
var commandRoutes = map[string]string{
	"login":      guard.LoginRoute,
	"register":   guard.RegisterRoute,
	"catalog":    CatalogRoute,
	"books":      BooksRoute,
	"categories": CategoriesRoute,
	"publishers": PublishersRoute,
	"members":    MembersRoute,
	"users":      UsersRoute,
	"lendings":   LendingsRoute,
	"loans":      MyLoansRoute,
	"reports":    ReportsRoute,
	"profile":    ProfileRoute,
}

// repl reads commands until EOF or exit. Command handlers print their own
// errors; the loop stays up regardless of what a screen does.
func (a *App) repl(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "shelf %s> ", a.statusLine())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "open":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: open <route>")
				continue
			}
			a.Open(ctx, args[0])

		case "dashboard":
			user := a.session.CurrentUser()
			if user == nil {
				a.Open(ctx, guard.LoginRoute)
				continue
			}
			a.Open(ctx, session.DashboardRouteFor(user.Role))

		case "whoami":
			user := a.session.CurrentUser()
			if user == nil {
				fmt.Fprintln(a.out, "Not signed in.")
				continue
			}
			fmt.Fprintf(a.out, "%s <%s> role=%s\n", user.Fullname, user.Email, user.Role)

		case "logout":
			a.logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			if path, ok := commandRoutes[cmd]; ok {
				a.Open(ctx, path)
				continue
			}
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp() {
	if a.session.Status() == session.StatusAuthenticated {
		fmt.Fprintln(a.out, "Available commands: dashboard, catalog, books, categories, publishers,")
		fmt.Fprintln(a.out, "  members, users, lendings, loans, reports, profile, whoami,")
		fmt.Fprintln(a.out, "  open <route>, logout, exit")
		fmt.Fprintln(a.out, "Which screens open depends on your role.")
	} else {
		fmt.Fprintln(a.out, "Available commands: login, register, exit")
	}
}
