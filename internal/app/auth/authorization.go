package auth

import (
	"context"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// AuthorizationService handles authorization decisions
type AuthorizationService struct {
	userRepo repositories.UserStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.UserStore) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// IsAdmin checks if the user has the admin role
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// ValidateAdmin returns ErrPermissionDenied unless the user is an admin
func (s *AuthorizationService) ValidateAdmin(ctx context.Context, userID int64) error {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateSelfOrAdmin allows a user to act on their own resources and an
// admin to act on anyone's.
func (s *AuthorizationService) ValidateSelfOrAdmin(ctx context.Context, actor *models.User, ownerID int64) error {
	if actor.ID == ownerID || actor.IsAdmin() {
		return nil
	}
	return apperrors.ErrPermissionDenied
}
