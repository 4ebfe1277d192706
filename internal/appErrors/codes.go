package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	CodeForbidden            ErrorCode = "FORBIDDEN"
	CodeInvalidToken         ErrorCode = "INVALID_TOKEN"
	CodeAlreadyAuthenticated ErrorCode = "ALREADY_AUTHENTICATED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Resources
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	// Business rules
	CodeUsernameTaken            ErrorCode = "USERNAME_TAKEN"
	CodeEmailAlreadyExists       ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeAlreadyApplied           ErrorCode = "ALREADY_APPLIED"
	CodeCompaniesCannotApply     ErrorCode = "COMPANIES_CANNOT_APPLY"
	CodeInvalidApplicationStatus ErrorCode = "INVALID_APPLICATION_STATUS"
	CodeApplicationNotPending    ErrorCode = "APPLICATION_NOT_PENDING"
	CodeCompanyRoleRequired      ErrorCode = "COMPANY_ROLE_REQUIRED"
	CodeSeekerRoleRequired       ErrorCode = "SEEKER_ROLE_REQUIRED"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"
)
