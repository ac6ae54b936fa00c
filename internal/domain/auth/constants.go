package auth

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)
