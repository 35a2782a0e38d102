package handler

import "github.com/gin-gonic/gin"

const (
	errInternalServer       = "Internal server error"
	errIncorrectCredentials = "Incorrect email or password"
	errNotAuthenticated     = "Not authenticated"
	errUsernameExists       = "Username already exists"
	errEmailExists          = "Email already exists"
	errUserNotFound         = "User not found"
	errNotEnoughPermissions = "Not enough permissions"
	errUserConflict         = "Username or Email already exists"
	errPasswordTooLong      = "Password must be at most 72 bytes"
	errTaskNotFound         = "Task not found."
	errInvalidTaskState     = "Invalid task state"
	errInvalidID            = "Invalid id"
)

func writeError(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}
