// Package seed creates the default data a fresh deployment needs: an admin
// account and a couple of starter courses.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/zhanel/coursehub/internal/app/models"
	appRepos "github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
	"github.com/zhanel/coursehub/internal/pkg/auth"
)

// Default admin credentials; the password must be rotated after first login.
const (
	defaultAdminEmail    = "admin@coursehub.app"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData seeds the admin account and starter courses if absent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	var finalErr error

	if err := seedAdmin(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedCourses(ctx, courseRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdmin(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	_, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default admin")
		return err
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Name:         "Administrator",
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		Role:         appModels.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}

func seedCourses(ctx context.Context, courseRepo *appRepos.CourseRepository, lgr zerolog.Logger) error {
	existing, err := courseRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing courses for seeding")
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	starters := []struct {
		title       string
		description string
	}{
		{"Introduction to Programming", "Variables, control flow and functions for complete beginners."},
		{"Databases and SQL", "Relational modeling, querying and transactions."},
	}

	for _, starter := range starters {
		description := starter.description
		course := &appModels.Course{Title: starter.title, Description: &description}
		if err := courseRepo.Create(ctx, course); err != nil {
			lgr.Error().Err(err).Str("title", starter.title).Msg("Error creating starter course")
			return err
		}
	}

	lgr.Info().Int("count", len(starters)).Msg("Starter courses created")
	return nil
}
