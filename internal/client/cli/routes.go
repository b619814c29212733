package cli

import (
	"context"

	"github.com/avdeyev/shelfkeeper/internal/client/guard"
	"github.com/avdeyev/shelfkeeper/internal/client/models"
	"github.com/avdeyev/shelfkeeper/internal/client/session"
)

// Screen routes beyond the auth and dashboard ones.
const (
	CatalogRoute    = "/catalog"
	BooksRoute      = "/manage/books"
	CategoriesRoute = "/manage/categories"
	PublishersRoute = "/manage/publishers"
	MembersRoute    = "/manage/members"
	UsersRoute      = "/manage/users"
	LendingsRoute   = "/lendings"
	MyLoansRoute    = "/my-loans"
	ReportsRoute    = "/reports"
	ProfileRoute    = "/profile"
)

var (
	adminOnly = []models.Role{models.RoleAdmin}
	staff     = []models.Role{models.RoleAdmin, models.RoleLibrarian}
	students  = []models.Role{models.RoleStudent}
)

// routeTable declares every screen once; the guard applies one algorithm
// to all of them. An empty allow-list means any authenticated role.
var routeTable = []guard.Route{
	{Path: guard.LoginRoute, PublicOnly: true},
	{Path: guard.RegisterRoute, PublicOnly: true},
	{Path: guard.UnauthorizedRoute, Public: true},

	{Path: session.AdminDashboardRoute, AllowedRoles: adminOnly},
	{Path: session.LibrarianDashboardRoute, AllowedRoles: staff},
	{Path: session.StudentDashboardRoute},

	{Path: CatalogRoute},
	{Path: ProfileRoute},

	{Path: BooksRoute, AllowedRoles: staff},
	{Path: CategoriesRoute, AllowedRoles: staff},
	{Path: PublishersRoute, AllowedRoles: staff},
	{Path: MembersRoute, AllowedRoles: staff},
	{Path: LendingsRoute, AllowedRoles: staff},
	{Path: ReportsRoute, AllowedRoles: staff},

	{Path: UsersRoute, AllowedRoles: adminOnly},

	{Path: MyLoansRoute, AllowedRoles: students},
}

func findRoute(path string) (guard.Route, bool) {
	for _, r := range routeTable {
		if r.Path == path {
			return r, true
		}
	}
	return guard.Route{}, false
}

// render dispatches a route that the guard has already cleared.
func (a *App) render(ctx context.Context, path string) error {
	switch path {
	case guard.LoginRoute:
		return a.loginScreen(ctx)
	case guard.RegisterRoute:
		return a.registerScreen(ctx)
	case guard.UnauthorizedRoute:
		a.renderUnauthorized(a.current)
		return nil
	case session.AdminDashboardRoute:
		return a.adminDashboard(ctx)
	case session.LibrarianDashboardRoute:
		return a.librarianDashboard(ctx)
	case session.StudentDashboardRoute:
		return a.studentDashboard(ctx)
	case CatalogRoute:
		return a.catalogScreen(ctx)
	case BooksRoute:
		return a.runResource(ctx, booksScreen)
	case CategoriesRoute:
		return a.runResource(ctx, categoriesScreen)
	case PublishersRoute:
		return a.runResource(ctx, publishersScreen)
	case MembersRoute:
		return a.runResource(ctx, membersScreen)
	case UsersRoute:
		return a.runResource(ctx, usersScreen)
	case LendingsRoute:
		return a.lendingsScreen(ctx)
	case MyLoansRoute:
		return a.myLoansScreen(ctx)
	case ReportsRoute:
		return a.reportsScreen(ctx)
	case ProfileRoute:
		return a.profileScreen(ctx)
	}
	return nil
}
