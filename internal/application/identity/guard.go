package identity

import (
	"strings"

	"github.com/medistore/storefront/internal/domain/identity"
)

// LoginPath is where anonymous visitors of a protected area are sent
const LoginPath = "/login"

// Decision is the outcome of Guard
type Decision struct {
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

var areas = []struct {
	prefix string
	role   identity.Role
}{
	{"/admin-dashboard", identity.RoleAdmin},
	{"/seller-dashboard", identity.RoleSeller},
	{"/profile", identity.RoleCustomer},
}

// Guard decides whether session may open path. Each role may only enter its
// own dashboard area and is otherwise sent to its home.
func Guard(path string, session *identity.Session) Decision {
	var owner identity.Role
	protected := false
	for _, a := range areas {
		if strings.HasPrefix(path, a.prefix) {
			owner, protected = a.role, true
			break
		}
	}
	if !protected {
		return Decision{Allow: true}
	}

	if session.Anonymous() {
		return Decision{RedirectTo: LoginPath}
	}

	role := identity.ParseRole(string(session.User.Role))
	if role != owner {
		return Decision{RedirectTo: role.Home()}
	}
	return Decision{Allow: true}
}
