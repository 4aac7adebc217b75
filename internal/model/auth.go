package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the teacher login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued teacher token
type LoginResponse struct {
	Token     string `json:"token"`
	TeacherID string `json:"teacherId"`
}

// TeacherClaims are the JWT claims for teacher tokens
type TeacherClaims struct {
	TeacherID string `json:"teacherId"`
	jwt.RegisteredClaims
}
