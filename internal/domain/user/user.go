package user

import (
	"errors"
	"time"
)

// Role is the fixed set of dashboard roles. Anything outside this
// enumeration is rejected instead of silently falling through.
type Role string

const (
	RoleVendor             Role = "Vendor"
	RoleProcurementManager Role = "Procurement Manager"
	RoleContractTeam       Role = "Contract Team"
	RoleFinanceTeam        Role = "Finance Team"
	RoleDepartmentHead     Role = "Department Head"
	RoleAdmin              Role = "Admin"
)

var ErrUnknownRole = errors.New("unknown role")

var dashboardPaths = map[Role]string{
	RoleVendor:             "/Vendor/dashboard.html",
	RoleProcurementManager: "/Procurement_Manager/dashboard.html",
	RoleContractTeam:       "/Contract_Team/dashboard.html",
	RoleFinanceTeam:        "/Finance_Team/dashboard.html",
	RoleDepartmentHead:     "/Department_Head/dashboard.html",
	RoleAdmin:              "/Admin/dashboard.html",
}

func ParseRole(s string) (Role, error) {
	r := Role(s)

	if _, ok := dashboardPaths[r]; !ok {
		return "", ErrUnknownRole
	}
	return r, nil
}

// DashboardPath resolves the post-login redirect target for a role.
func (r Role) DashboardPath() (string, error) {
	path, ok := dashboardPaths[r]

	if !ok {
		return "", ErrUnknownRole
	}
	return path, nil
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"` // the login email
	PasswordHash string    `json:"-"`        // never expose hash in JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
