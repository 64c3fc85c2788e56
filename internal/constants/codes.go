package constants

// Machine-readable error codes included in API error responses.
const (
	CodeBadRequest         = "bad_request"
	CodeValidationError    = "validation_error"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeDuplicateResource  = "duplicate_resource"
	CodeInvalidCredentials = "invalid_credentials"
	CodeTokenExpired       = "token_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeInvalidResetToken  = "invalid_reset_token"
	CodeInternalError      = "internal_error"
)

// User-facing error messages.
const (
	MsgAuthRequired        = "Authentication required"
	MsgAccessDenied        = "You don't have permission to access this resource"
	MsgResourceNotFound    = "The requested resource could not be found"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgInternalServerError = "An internal server error occurred"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgInvalidResetToken   = "Token is invalid or expired"
	MsgAllFieldsRequired   = "All fields are required"
	MsgTokenExpired        = "Token has expired"
	MsgEmptyRequestBody    = "Request body must not be empty"
	MsgMalformedJSON       = "Request body contains malformed JSON"
	MsgRequestBodyTooLarge = "Request body must not be larger than 1MB"
)

// HTTP header names and values.
const (
	HeaderContentType    = "Content-Type"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXContentType   = "X-Content-Type-Options"
	HeaderXFrameOptions  = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	ContentTypeJSON      = "application/json"
	ContentTypeNoSniff   = "nosniff"
	FrameOptionsDeny     = "DENY"
	ReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Context keys for values attached to authenticated requests.
const (
	AccountIDContextKey = "account_id"
	RequestIDContextKey = "request_id"
)
