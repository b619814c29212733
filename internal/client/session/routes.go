package session

import "github.com/avdeyev/shelfkeeper/internal/client/models"

// Landing routes per role.
const (
	AdminDashboardRoute     = "/admin/dashboard"
	LibrarianDashboardRoute = "/librarian/dashboard"
	StudentDashboardRoute   = "/student/dashboard"
)

// DashboardRouteFor maps a role to its landing route. Unknown or missing
// roles land on the student dashboard: the fallback is always the least
// privileged screen, never an elevated one.
func DashboardRouteFor(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return AdminDashboardRoute
	case models.RoleLibrarian:
		return LibrarianDashboardRoute
	default:
		return StudentDashboardRoute
	}
}
