package response

import "github.com/gofiber/fiber/v2"

// Response represents the error envelope. Success payloads are flattened
// next to success and message, see Success.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success sends a 200 response with fields merged into the envelope
func Success(c *fiber.Ctx, message string, fields fiber.Map) error {
	return send(c, fiber.StatusOK, message, fields)
}

// Accepted sends a 202 accepted response
func Accepted(c *fiber.Ctx, message string, fields fiber.Map) error {
	return send(c, fiber.StatusAccepted, message, fields)
}

func send(c *fiber.Ctx, status int, message string, fields fiber.Map) error {
	body := fiber.Map{}
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	body["message"] = message
	return c.Status(status).JSON(body)
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
