package appMiddleware

import "github.com/golang-jwt/jwt/v5"

type contextKey string

const UserIDKey contextKey = "userID"
const UserRoleKey contextKey = "userRole"

// RoleAdmin may onboard and inspect sponsor businesses.
const RoleAdmin = "admin"

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
