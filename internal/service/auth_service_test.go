package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLoginAndValidate(t *testing.T) {
	t.Setenv("TEACHER_USERNAME", "morah")
	t.Setenv("TEACHER_PASSWORD", "sodi123")
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService()

	res, err := svc.Login("morah", "sodi123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.TeacherID, "teacher_"))
	require.NotEmpty(t, res.Token)

	claims, err := svc.ValidateTeacherToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.TeacherID, claims.TeacherID)
}

func TestAuthTeacherIDStableAcrossLogins(t *testing.T) {
	t.Setenv("TEACHER_USERNAME", "morah")
	t.Setenv("TEACHER_PASSWORD", "sodi123")
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService()

	first, err := svc.Login("morah", "sodi123")
	require.NoError(t, err)
	second, err := svc.Login("morah", "sodi123")
	require.NoError(t, err)
	assert.Equal(t, first.TeacherID, second.TeacherID)

	// Classes created under the first session stay visible after a re-login
	classSvc, _, _, _ := newClassFixture()
	ctx := context.Background()
	_, err = classSvc.CreateClass(ctx, first.TeacherID, "Grade 8", "ABC123")
	require.NoError(t, err)

	classes, err := classSvc.ListClasses(ctx, second.TeacherID)
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}

func TestAuthRejectsBadCredentials(t *testing.T) {
	t.Setenv("TEACHER_USERNAME", "morah")
	t.Setenv("TEACHER_PASSWORD", "sodi123")
	svc := NewAuthService()

	_, err := svc.Login("morah", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("someone", "sodi123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService()

	_, err := svc.ValidateTeacherToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret
	t.Setenv("JWT_SECRET", "other-secret")
	other := NewAuthService()
	res, err := other.Login("teacher", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateTeacherToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
