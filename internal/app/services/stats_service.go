package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/pkg/cache"
)

// Course module statistics cover courses created within this window.
const courseModuleStatsWindow = 365 * 24 * time.Hour

// CategorizePerformance maps a mean grade on the 0-5 scale to its label.
func CategorizePerformance(averageGrade float64) models.PerformanceCategory {
	switch {
	case averageGrade >= 4.5:
		return models.PerformanceExcellent
	case averageGrade >= 3.5:
		return models.PerformanceGood
	case averageGrade >= 2.5:
		return models.PerformanceSatisfactory
	default:
		return models.PerformanceUnsatisfactory
	}
}

// StatsService defines the interface for the aggregation reports
type StatsService interface {
	PopularCourses(ctx context.Context) ([]dto.PopularCourseRow, error)
	CourseStatistics(ctx context.Context) ([]dto.CourseStatsRow, error)
	CourseModuleStatistics(ctx context.Context) ([]dto.CourseModuleStatsRow, error)
	UserPerformance(ctx context.Context) ([]dto.UserPerformanceRow, error)
	UserActivity(ctx context.Context) ([]dto.UserActivityRow, error)
	NotificationStatistics(ctx context.Context) ([]dto.NotificationStatsRow, error)
	WarmCache(ctx context.Context)
}

// statsServiceImpl implements StatsService. The report cache is optional;
// without it every call goes straight to the database. Reports run outside
// any transaction and tolerate data a write in flight has not landed yet.
type statsServiceImpl struct {
	statsRepo   repositories.StatsStore
	reportCache *cache.ReportCache
	logger      zerolog.Logger
}

// NewStatsService creates a new StatsService. reportCache may be nil.
func NewStatsService(statsRepo repositories.StatsStore, reportCache *cache.ReportCache, logger zerolog.Logger) StatsService {
	return &statsServiceImpl{
		statsRepo:   statsRepo,
		reportCache: reportCache,
		logger:      logger,
	}
}

// cached runs the query through the cache-aside path. With refresh set the
// cache read is skipped and the stored rows are replaced. Cache failures are
// logged and degrade to the database.
func cached[T any](ctx context.Context, s *statsServiceImpl, key string, refresh bool, query func(context.Context) ([]T, error)) ([]T, error) {
	if s.reportCache != nil && !refresh {
		var rows []T
		err := s.reportCache.Get(ctx, key, &rows)
		if err == nil {
			return rows, nil
		}
		if err != cache.ErrCacheMiss {
			s.logger.Warn().Err(err).Str("key", key).Msg("Report cache read failed")
		}
	}

	rows, err := query(ctx)
	if err != nil {
		return nil, err
	}

	if s.reportCache != nil {
		if err := s.reportCache.Set(ctx, key, rows); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Report cache write failed")
		}
	}
	return rows, nil
}

// PopularCourses reports courses passing the popularity thresholds
func (s *statsServiceImpl) PopularCourses(ctx context.Context) ([]dto.PopularCourseRow, error) {
	return cached(ctx, s, cache.KeyPopularCourses, false, s.statsRepo.PopularCourses)
}

// CourseStatistics reports per-course enrollment and satisfaction aggregates
func (s *statsServiceImpl) CourseStatistics(ctx context.Context) ([]dto.CourseStatsRow, error) {
	return cached(ctx, s, cache.KeyCourseStatistics, false, s.statsRepo.CourseStatistics)
}

// CourseModuleStatistics reports module and assessment aggregates for
// courses created within the last year
func (s *statsServiceImpl) CourseModuleStatistics(ctx context.Context) ([]dto.CourseModuleStatsRow, error) {
	return cached(ctx, s, cache.KeyCourseModuleStatistics, false, s.queryCourseModuleStatistics)
}

// UserPerformance reports per-student grade aggregates with the derived
// performance category
func (s *statsServiceImpl) UserPerformance(ctx context.Context) ([]dto.UserPerformanceRow, error) {
	return cached(ctx, s, cache.KeyUserPerformance, false, s.queryUserPerformance)
}

// UserActivity reports per-student enrollment and completion aggregates
func (s *statsServiceImpl) UserActivity(ctx context.Context) ([]dto.UserActivityRow, error) {
	return cached(ctx, s, cache.KeyUserActivity, false, s.statsRepo.UserActivity)
}

// NotificationStatistics reports per-user notification delivery aggregates
func (s *statsServiceImpl) NotificationStatistics(ctx context.Context) ([]dto.NotificationStatsRow, error) {
	return cached(ctx, s, cache.KeyNotificationStatistics, false, s.statsRepo.NotificationStatistics)
}

func (s *statsServiceImpl) queryCourseModuleStatistics(ctx context.Context) ([]dto.CourseModuleStatsRow, error) {
	since := time.Now().Add(-courseModuleStatsWindow)
	return s.statsRepo.CourseModuleStatistics(ctx, since)
}

func (s *statsServiceImpl) queryUserPerformance(ctx context.Context) ([]dto.UserPerformanceRow, error) {
	rows, err := s.statsRepo.UserPerformance(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].PerformanceCategory = string(CategorizePerformance(rows[i].AverageGrade))
	}
	return rows, nil
}

// WarmCache refreshes every report entry. Called by the scheduler so peak
// traffic reads cached rows.
func (s *statsServiceImpl) WarmCache(ctx context.Context) {
	if s.reportCache == nil {
		return
	}

	warm := func(name string, err error) {
		if err != nil {
			s.logger.Warn().Err(err).Str("report", name).Msg("Report warm-up failed")
		}
	}

	_, err := cached(ctx, s, cache.KeyPopularCourses, true, s.statsRepo.PopularCourses)
	warm("popular_courses", err)
	_, err = cached(ctx, s, cache.KeyCourseStatistics, true, s.statsRepo.CourseStatistics)
	warm("course_statistics", err)
	_, err = cached(ctx, s, cache.KeyCourseModuleStatistics, true, s.queryCourseModuleStatistics)
	warm("course_module_statistics", err)
	_, err = cached(ctx, s, cache.KeyUserPerformance, true, s.queryUserPerformance)
	warm("user_performance", err)
	_, err = cached(ctx, s, cache.KeyUserActivity, true, s.statsRepo.UserActivity)
	warm("user_activity", err)
	_, err = cached(ctx, s, cache.KeyNotificationStatistics, true, s.statsRepo.NotificationStatistics)
	warm("notification_statistics", err)
}
