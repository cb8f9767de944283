package apperrors

import (
	"errors"
	"fmt"
)

// Stable machine-readable codes carried by BusinessError. The HTTP layer maps
// them to status codes; clients branch on them.
const (
	CodeCircularReference     = "CIRCULAR_REFERENCE"
	CodeInvalidParentCategory = "INVALID_PARENT_CATEGORY"
	CodeCategoryHasChildren   = "CATEGORY_HAS_CHILDREN"
	CodeCategoryNameRequired  = "CATEGORY_NAME_REQUIRED"
	CodeSeoSlugRequired       = "SEO_SLUG_REQUIRED"
	CodeDuplicateApiKeyName   = "DUPLICATE_API_KEY_NAME"
	CodeApiKeyConflict        = "API_KEY_GENERATION_CONFLICT"
	CodeSellerProfileNotFound = "SELLER_PROFILE_NOT_FOUND"
	CodeSellerProfileExists   = "SELLER_PROFILE_EXISTS"
	CodeInvalidOrderStatus    = "INVALID_ORDER_STATUS"
)

var (
	// ErrUnauthorized means the credential itself is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the credential is valid but does not grant the operation.
	ErrForbidden = errors.New("forbidden")
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// NewNotFound creates a NotFoundError for the given entity and id.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// BusinessError is a domain rule violation with a stable sub-code.
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// NewBusiness creates a BusinessError with the given code and message.
func NewBusiness(code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

// BusinessCode returns the sub-code of a wrapped BusinessError, or "" if err
// is not one.
func BusinessCode(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
