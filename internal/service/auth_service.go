package service

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"selstudy/internal/model"
)

// AuthService handles teacher authentication. Credentials come from the
// environment; participants are anonymous and never authenticate.
type AuthService struct {
	teacherUsername string
	teacherPassword string
	jwtSecret       []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("TEACHER_USERNAME")
	if username == "" {
		username = "teacher"
	}
	password := os.Getenv("TEACHER_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		teacherUsername: username,
		teacherPassword: password,
		jwtSecret:       []byte(secret),
	}
}

// Login validates credentials and returns a signed teacher token. The
// teacherID is derived from the username so classes and notifications stay
// attached to the same identity across logins and token expiries.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.teacherUsername || password != s.teacherPassword {
		return nil, ErrInvalidCredentials
	}

	teacherID := "teacher_" + s.teacherUsername

	claims := &model.TeacherClaims{
		TeacherID: teacherID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		TeacherID: teacherID,
	}, nil
}

// ValidateTeacherToken validates a teacher JWT and returns its claims
func (s *AuthService) ValidateTeacherToken(tokenString string) (*model.TeacherClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.TeacherClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.TeacherClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
