package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError translates a failed service call into an HTTP response.
// Service errors cross the container as plain messages, so the mapping keys
// on the sentinel error texts the modules publish.
func mapServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: firstSentence(errStr),
		})
	case strings.Contains(errStr, "already exists"),
		strings.Contains(errStr, "already a member"),
		strings.Contains(errStr, "already pending"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: firstSentence(errStr),
		})
	case strings.Contains(errStr, "invalid email format"),
		strings.Contains(errStr, "password must be"),
		strings.Contains(errStr, "name is required"),
		strings.Contains(errStr, "invalid task status"),
		strings.Contains(errStr, "invalid member role"),
		strings.Contains(errStr, "not a board invitation"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: firstSentence(errStr),
		})
	case strings.Contains(errStr, "too many invitations"):
		return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
			Error:   "rate_limited",
			Message: "Too many invitations, try again later",
		})
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "invalid refresh token"),
		strings.Contains(errStr, "token has expired"),
		strings.Contains(errStr, "invalid token"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired token",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// firstSentence strips wrapping prefixes like "service call failed:" so the
// client sees the module's message, not the transport's.
func firstSentence(s string) string {
	if idx := strings.LastIndex(s, ": "); idx >= 0 {
		tail := s[idx+2:]
		if tail != "" {
			return tail
		}
	}
	return s
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}
