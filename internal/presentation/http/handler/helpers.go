package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/solines/hotelquote-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context; an absent or
// malformed role degrades to employee, the least privileged role
func GetUserRole(c *gin.Context) enum.UserRole {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return enum.RoleEmployee
	}
	role, ok := roleVal.(enum.UserRole)
	if !ok || !role.Valid() {
		return enum.RoleEmployee
	}
	return role
}

// IsAdmin checks if the current user holds the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == enum.RoleAdmin
}
