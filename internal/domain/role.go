package domain

// Role is the closed set of actor roles. Authorization is a capability check
// against this set, never a comparison against ad-hoc strings.
type Role string

const (
	RoleLocation Role = "location" // field location submitter
	RoleReviewer Role = "reviewer" // approves or rejects pending submissions
	RoleAdmin    Role = "admin"
)

// Capability names an action a role may perform.
type Capability string

const (
	CapSubmitPayroll Capability = "payroll:submit" // edit drafts, submit
	CapReviewPayroll Capability = "payroll:review" // approve, reject
	CapReadPayroll   Capability = "payroll:read"
	CapManageStaff   Capability = "staff:manage"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleLocation: {
		CapSubmitPayroll: true,
		CapReadPayroll:   true,
	},
	RoleReviewer: {
		CapReviewPayroll: true,
		CapReadPayroll:   true,
	},
	RoleAdmin: {
		CapSubmitPayroll: true,
		CapReviewPayroll: true,
		CapReadPayroll:   true,
		CapManageStaff:   true,
	},
}

// ParseRole maps a claim value to a known Role. Unknown values yield false.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleLocation, RoleReviewer, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Can reports whether the role holds the capability.
func (r Role) Can(cap Capability) bool {
	return roleCapabilities[r][cap]
}
