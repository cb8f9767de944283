package handlers

import (
	"errors"
	"fmt"
	"log"

	"lapak/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the typed service errors to HTTP responses. This is the
// only place status codes are assigned; services raise typed errors and
// never see HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": nf.Error(),
		})
	}

	var be *apperrors.BusinessError
	if errors.As(err, &be) {
		status := fiber.StatusBadRequest
		switch be.Code {
		case apperrors.CodeSellerProfileNotFound:
			// Distinct from a plain permission failure: the client should
			// prompt seller onboarding, not show "access denied".
			status = fiber.StatusForbidden
		case apperrors.CodeDuplicateApiKeyName, apperrors.CodeApiKeyConflict, apperrors.CodeSellerProfileExists:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"message": be.Message,
			"code":    be.Code,
		})
	}

	if errors.Is(err, apperrors.ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication is required",
		})
	}
	if errors.Is(err, apperrors.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have permission to perform this action",
		})
	}

	log.Printf("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

// respondValidationError renders validator failures field by field.
func respondValidationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
