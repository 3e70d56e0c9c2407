package response

import "github.com/gin-gonic/gin"

// Detail writes a flat {"detail": message} body, used for not-found,
// forbidden and authentication errors.
func Detail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"detail": message})
}

// Conflict writes a 400 {"error": message} body for state-machine
// precondition violations (duplicate add, remove of absent membership).
func Conflict(c *gin.Context, message string) {
	c.JSON(400, gin.H{"error": message})
}

// FieldErrors writes a 400 validation body mapping each field to its
// messages.
func FieldErrors(c *gin.Context, fields map[string][]string) {
	c.JSON(400, fields)
}

// FieldError is the single-field shortcut for FieldErrors.
func FieldError(c *gin.Context, field, message string) {
	FieldErrors(c, map[string][]string{field: {message}})
}
