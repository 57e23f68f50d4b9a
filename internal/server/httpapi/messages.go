package httpapi

// User-facing response messages.
const (
	msgNoToken            = "Not authorized, no token"
	msgNotAuthorized      = "Not authorized"
	msgServerError        = "Server error"
	msgInvalidBody        = "Invalid request body"
	msgNotFound           = "Not found"
	msgTooManyRequests    = "Too many requests, please try again later"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgResetRequested     = "If an account with that email exists, a password reset link has been sent."
	msgResetDone          = "Password has been reset successfully"
	msgResetInvalid       = "Password reset token is invalid or has expired"
	msgPasswordTooLong    = "password must be at most 72 bytes"
	msgLoggedOut          = "Logged out"
	msgCameraNotFound     = "Camera not found"
	msgRecordingNotFound  = "Recording not found"
	msgAlertNotFound      = "Alert not found"
	msgAlertResolved      = "Alert already resolved"
	msgStorageUnavailable = "Recording storage is not configured"
	msgBackendRunning     = "Backend is running!"
)
