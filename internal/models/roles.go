package models

// Role names. Self-service registration always yields RoleUser; the other
// roles are assigned out of band by platform operators.
const (
	RoleUser        = "user"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
)
