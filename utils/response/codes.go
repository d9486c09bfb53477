package response

// Stable error codes clients can branch on
const (
	CodeInvalidAction      = "INVALID_ACTION"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAuthInvalid        = "AUTH_INVALID"

	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidID        = "INVALID_ID"
	CodeProductNotFound  = "PRODUCT_NOT_FOUND"
	CodeProductExists    = "PRODUCT_EXISTS"
	CodeOrderNotFound    = "ORDER_NOT_FOUND"
	CodeOrderExists      = "ORDER_EXISTS"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
