package errors

// Stable error codes for the frontend.
// Format: CATEGORY_DETAIL. The frontend maps these codes to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // session required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or unsigned token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revoked on logout

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // insufficient permissions
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from context
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admins only

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // malformed input
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // non-numeric or zero ID
	ValidationRequired      = "VALIDATION_REQUIRED"       // required field missing
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // value out of range
	ValidationQueryTooShort = "VALIDATION_QUERY_TOO_SHORT" // search query too short

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND" // missing or not publicly visible
	CatalogSKUConflict     = "CATALOG_SKU_CONFLICT"      // SKU still duplicated after retries
	CatalogSlugConflict    = "CATALOG_SLUG_CONFLICT"     // slug duplicated
	CatalogInvalidPrice    = "CATALOG_INVALID_PRICE"     // price or sale price invalid

	// ==================== Taxonomy (TAXONOMY_) ====================
	TaxonomyNotFound      = "TAXONOMY_NOT_FOUND"       // taxonomy entity missing
	TaxonomyDuplicateName = "TAXONOMY_DUPLICATE_NAME"  // name already in use
	TaxonomyHasDependents = "TAXONOMY_HAS_DEPENDENTS"  // informative: delete cascades

	// ==================== Ratings (RATING_) ====================
	RatingNotFound      = "RATING_NOT_FOUND"
	RatingInvalidScore  = "RATING_INVALID_SCORE"   // score outside 1-5
	RatingAlreadyExists = "RATING_ALREADY_EXISTS"  // user already rated the product

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // content type not allowed
	UploadInvalidFolder   = "UPLOAD_INVALID_FOLDER"    // destination folder not allowed
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"            // presign generation failed

	// ==================== Internal errors (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
