package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

const dashboardStatsCacheKey = "dashboard:stats"

// DashboardService aggregates catalog and roster counters for the dashboards.
type DashboardService struct {
	papers   paperStore
	students studentStore
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(papers paperStore, students studentStore, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{papers: papers, students: students, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Stats computes dashboard aggregates, serving from cache when possible.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache.Enabled() {
		var cached models.DashboardStats
		if hit, err := s.cache.Get(ctx, dashboardStatsCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	papers := s.papers.Papers()
	students := s.students.List(models.StudentFilter{})

	stats := &models.DashboardStats{
		TotalPapers:   len(papers),
		TotalStudents: len(students),
	}
	for _, p := range papers {
		switch p.Category {
		case models.CategoryPastPaper:
			stats.PastPapers++
		case models.CategoryModelPaper:
			stats.ModelPapers++
		}
		stats.TotalDownloads += p.Downloads
	}
	for _, st := range students {
		if st.Status == models.StudentActive {
			stats.ActiveStudents++
		}
	}

	stats.PopularPapers = topByDownloads(papers, 5)
	stats.RecentStudents = recentByEnrollment(students, 3)

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, dashboardStatsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
		}
	}

	return stats, nil
}

func topByDownloads(papers []models.Paper, n int) []models.Paper {
	sorted := make([]models.Paper, len(papers))
	copy(sorted, papers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Downloads > sorted[j].Downloads
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func recentByEnrollment(students []models.Student, n int) []models.Student {
	sorted := make([]models.Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnrollmentDate > sorted[j].EnrollmentDate
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
