package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_PopularCoursesSQL(t *testing.T) {
	repo := NewStatsRepository(nil)

	query, args, err := repo.popularCoursesSQL()
	require.NoError(t, err)
	assert.Empty(t, args)

	// Popularity thresholds live in the HAVING clause, applied after
	// grouping so the counts are per course.
	assert.Contains(t, query, "HAVING COUNT(DISTINCT e.id) >= 5 AND AVG(f.rating) > 3.5")
	assert.Contains(t, query, "LEFT JOIN enrollments e ON e.course_id = c.id")
	assert.Contains(t, query, "COALESCE(AVG(f.rating), 0)")
	assert.Contains(t, query, "ORDER BY enrollment_count DESC, average_rating DESC")
}

func TestStatsRepository_CourseModuleStatisticsSQL(t *testing.T) {
	repo := NewStatsRepository(nil)
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := repo.courseModuleStatisticsSQL(since)
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, since, args[0])

	assert.Contains(t, query, "c.created_at >= $1")
	// Averages come from correlated subselects over graded assessments only,
	// collapsed to zero for courses without any.
	assert.Contains(t, query, "a.grade > 0")
	assert.Contains(t, query, "COALESCE((SELECT AVG(a.grade)")
}
