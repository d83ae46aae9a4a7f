package authz

// Roles known to the system. Every authenticated principal carries exactly
// one of these.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Resources and actions used by the route layer.
const (
	ResourceLeave        = "leave"
	ResourceAnnouncement = "announcement"
	ResourceReport       = "report"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
)

// Permission is one (resource, action) grant.
type Permission struct {
	Resource string
	Action   string
}

// DefaultPolicies is the declarative role -> permissions table. Ownership
// rules (an employee touching their own pending leave, an announcement's
// creator editing it) are enforced by the services, not here.
var DefaultPolicies = map[string][]Permission{
	RoleAdmin: {
		{ResourceLeave, ActionCreate},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionUpdate},
		{ResourceLeave, ActionDelete},
		{ResourceLeave, ActionApprove},
		{ResourceAnnouncement, ActionCreate},
		{ResourceAnnouncement, ActionRead},
		{ResourceAnnouncement, ActionUpdate},
		{ResourceAnnouncement, ActionDelete},
		{ResourceReport, ActionCreate},
	},
	RoleEmployee: {
		{ResourceLeave, ActionCreate},
		{ResourceAnnouncement, ActionRead},
		{ResourceReport, ActionCreate},
	},
}
