package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

type stubUserStore struct {
	users map[int64]*models.User
}

func (s *stubUserStore) Create(_ context.Context, _ *models.User) error { return nil }

func (s *stubUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserStore) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func newAuthorizationService() *AuthorizationService {
	return NewAuthorizationService(&stubUserStore{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleAdmin},
		2: {ID: 2, Role: models.RoleStudent},
	}})
}

func TestAuthorizationService_IsAdmin(t *testing.T) {
	service := newAuthorizationService()

	isAdmin, err := service.IsAdmin(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = service.IsAdmin(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = service.IsAdmin(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthorizationService_ValidateAdmin(t *testing.T) {
	service := newAuthorizationService()

	require.NoError(t, service.ValidateAdmin(context.Background(), 1))
	assert.ErrorIs(t, service.ValidateAdmin(context.Background(), 2), apperrors.ErrPermissionDenied)
}

func TestAuthorizationService_ValidateSelfOrAdmin(t *testing.T) {
	service := newAuthorizationService()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	student := &models.User{ID: 2, Role: models.RoleStudent}

	require.NoError(t, service.ValidateSelfOrAdmin(context.Background(), student, 2))
	require.NoError(t, service.ValidateSelfOrAdmin(context.Background(), admin, 2))
	assert.ErrorIs(t, service.ValidateSelfOrAdmin(context.Background(), student, 1), apperrors.ErrPermissionDenied)
}
