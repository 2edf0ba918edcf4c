package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-papers-api/internal/models"
	"github.com/noah-isme/lms-papers-api/internal/repository"
)

func TestDashboardServiceStats(t *testing.T) {
	papers := repository.NewPaperStore()
	students := repository.NewStudentStore()
	svc := NewDashboardService(papers, students, nil, 0, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalPapers)
	assert.Equal(t, 3, stats.PastPapers)
	assert.Equal(t, 3, stats.ModelPapers)
	assert.Equal(t, 45+67+32+28+56+19, stats.TotalDownloads)
	assert.Equal(t, 5, stats.TotalStudents)
	assert.Equal(t, 5, stats.ActiveStudents)
}

func TestDashboardServicePopularPapersOrdering(t *testing.T) {
	papers := repository.NewPaperStore()
	students := repository.NewStudentStore()
	svc := NewDashboardService(papers, students, nil, 0, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.PopularPapers, 5)
	assert.Equal(t, "2", stats.PopularPapers[0].ID) // 67 downloads
	assert.Equal(t, "5", stats.PopularPapers[1].ID) // 56 downloads
	assert.Equal(t, "1", stats.PopularPapers[2].ID) // 45 downloads
	for i := 1; i < len(stats.PopularPapers); i++ {
		assert.GreaterOrEqual(t, stats.PopularPapers[i-1].Downloads, stats.PopularPapers[i].Downloads)
	}
}

func TestDashboardServiceRecentStudents(t *testing.T) {
	papers := repository.NewPaperStore()
	students := repository.NewStudentStore()
	svc := NewDashboardService(papers, students, nil, 0, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.RecentStudents, 3)
	assert.Equal(t, "3", stats.RecentStudents[0].ID) // enrolled 2024-03-05
	assert.Equal(t, "2", stats.RecentStudents[1].ID) // enrolled 2024-02-20
	assert.Equal(t, "5", stats.RecentStudents[2].ID) // enrolled 2024-02-10
}

func TestDashboardServiceReflectsMutations(t *testing.T) {
	papers := repository.NewPaperStore()
	students := repository.NewStudentStore()
	svc := NewDashboardService(papers, students, nil, 0, nil)

	papers.IncrementDownloads("1")
	papers.Delete("6")
	students.Add(models.Student{ID: "6", Name: "Sarah Brown", Email: "sarah.b@example.com", Grade: models.Grade9, EnrollmentDate: "2024-04-01", Status: models.StudentInactive})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalPapers)
	assert.Equal(t, 2, stats.ModelPapers)
	assert.Equal(t, 46+67+32+28+56, stats.TotalDownloads)
	assert.Equal(t, 6, stats.TotalStudents)
	assert.Equal(t, 5, stats.ActiveStudents)
	assert.Equal(t, "6", stats.RecentStudents[0].ID)
}
