package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
)

// mockStatsStore returns canned rows and records call counts.
type mockStatsStore struct {
	performanceRows []dto.UserPerformanceRow
	popularRows     []dto.PopularCourseRow
	moduleStatsCall int
	lastSince       time.Time
}

func (m *mockStatsStore) PopularCourses(_ context.Context) ([]dto.PopularCourseRow, error) {
	return m.popularRows, nil
}

func (m *mockStatsStore) CourseStatistics(_ context.Context) ([]dto.CourseStatsRow, error) {
	return nil, nil
}

func (m *mockStatsStore) CourseModuleStatistics(_ context.Context, since time.Time) ([]dto.CourseModuleStatsRow, error) {
	m.moduleStatsCall++
	m.lastSince = since
	return nil, nil
}

func (m *mockStatsStore) UserPerformance(_ context.Context) ([]dto.UserPerformanceRow, error) {
	return m.performanceRows, nil
}

func (m *mockStatsStore) UserActivity(_ context.Context) ([]dto.UserActivityRow, error) {
	return nil, nil
}

func (m *mockStatsStore) NotificationStatistics(_ context.Context) ([]dto.NotificationStatsRow, error) {
	return nil, nil
}

func TestCategorizePerformance(t *testing.T) {
	tests := []struct {
		grade float64
		want  models.PerformanceCategory
	}{
		{5.0, models.PerformanceExcellent},
		{4.5, models.PerformanceExcellent},
		{4.49, models.PerformanceGood},
		{3.5, models.PerformanceGood},
		{3.49, models.PerformanceSatisfactory},
		{2.5, models.PerformanceSatisfactory},
		{2.49, models.PerformanceUnsatisfactory},
		{0, models.PerformanceUnsatisfactory},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizePerformance(tt.grade), "grade %.2f", tt.grade)
	}
}

func TestStatsService_UserPerformance_AppliesCategories(t *testing.T) {
	repo := &mockStatsStore{
		performanceRows: []dto.UserPerformanceRow{
			{UserID: 1, AverageGrade: 4.8},
			{UserID: 2, AverageGrade: 3.6},
			{UserID: 3, AverageGrade: 1.2},
		},
	}
	service := NewStatsService(repo, nil, zerolog.Nop())

	rows, err := service.UserPerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Excellent", rows[0].PerformanceCategory)
	assert.Equal(t, "Good", rows[1].PerformanceCategory)
	assert.Equal(t, "Unsatisfactory", rows[2].PerformanceCategory)
}

func TestStatsService_NilCachePassesThrough(t *testing.T) {
	repo := &mockStatsStore{
		popularRows: []dto.PopularCourseRow{{CourseID: 1, CourseTitle: "Go Fundamentals", EnrollmentCount: 12, AverageRating: 4.2}},
	}
	service := NewStatsService(repo, nil, zerolog.Nop())

	rows, err := service.PopularCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Go Fundamentals", rows[0].CourseTitle)
}

func TestStatsService_CourseModuleStatistics_UsesYearWindow(t *testing.T) {
	repo := &mockStatsStore{}
	service := NewStatsService(repo, nil, zerolog.Nop())

	_, err := service.CourseModuleStatistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.moduleStatsCall)

	wantSince := time.Now().Add(-courseModuleStatsWindow)
	assert.WithinDuration(t, wantSince, repo.lastSince, time.Minute)
}

func TestStatsService_WarmCache_NoCacheIsNoop(t *testing.T) {
	repo := &mockStatsStore{}
	service := NewStatsService(repo, nil, zerolog.Nop())

	service.WarmCache(context.Background())
	assert.Zero(t, repo.moduleStatsCall)
}
