package handler

const (
	errInternalServer     = "Internal server error"
	errUserExists         = "User already exists"
	errUserNotFound       = "User not found"
	errInvalidCredentials = "Invalid credentials"
	errForbidden          = "Forbidden"
	errTriggerFailed      = "Failed to trigger event"
)
