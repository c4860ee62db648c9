package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the admin token.
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// AdminClaims are the JWT claims for academy staff.
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// StudentClaims are the JWT claims for a test-taker. The token is scoped to
// a single test session.
type StudentClaims struct {
	StudentID string `json:"studentId"`
	TestID    string `json:"testId"`
	jwt.RegisteredClaims
}
