package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

func TestPaperStoreSeedsCatalog(t *testing.T) {
	store := NewPaperStore()

	papers := store.Papers()
	require.Len(t, papers, 6)
	assert.Equal(t, papers, store.Filtered())
}

func TestPaperStoreFilterCategoryAndGrade(t *testing.T) {
	store := NewPaperStore()

	result := store.ApplyFilter(models.PaperFilter{
		Category: models.CategoryPastPaper,
		Grade:    models.Grade10,
	})

	require.Len(t, result, 1)
	assert.Equal(t, "Mathematics Grade 10 Past Paper 2024", result[0].Title)
	assert.Equal(t, result, store.Filtered())
}

func TestPaperStoreFilterSearchMatchesTitleOrDescription(t *testing.T) {
	store := NewPaperStore()

	result := store.ApplyFilter(models.PaperFilter{Search: "BIOLOGY"})

	require.Len(t, result, 1)
	assert.Equal(t, "5", result[0].ID)

	// "examination" appears in descriptions of several papers.
	result = store.ApplyFilter(models.PaperFilter{Search: "examination"})
	assert.Greater(t, len(result), 1)
}

func TestPaperStoreEmptyFilterMatchesAll(t *testing.T) {
	store := NewPaperStore()

	store.ApplyFilter(models.PaperFilter{Category: models.CategoryModelPaper})
	require.Len(t, store.Filtered(), 3)

	result := store.ApplyFilter(models.PaperFilter{})
	assert.Len(t, result, 6)
}

func TestPaperStoreFilterNoMatches(t *testing.T) {
	store := NewPaperStore()

	result := store.ApplyFilter(models.PaperFilter{
		Subject: models.SubjectMathematics,
		Grade:   models.Grade12,
	})

	assert.Empty(t, result)
	assert.Empty(t, store.Filtered())
}

func TestPaperStoreAddPrependsBothViews(t *testing.T) {
	store := NewPaperStore()

	// Narrow the filtered view first; the new entry must still surface in it.
	store.ApplyFilter(models.PaperFilter{Category: models.CategoryPastPaper})
	before := len(store.Filtered())

	store.Add(models.Paper{
		ID:       "new-1",
		Title:    "History Model Paper Grade 10",
		Category: models.CategoryModelPaper,
		Subject:  models.SubjectHistory,
		Grade:    models.Grade10,
	})

	papers := store.Papers()
	require.Len(t, papers, 7)
	assert.Equal(t, "new-1", papers[0].ID)

	filtered := store.Filtered()
	require.Len(t, filtered, before+1)
	assert.Equal(t, "new-1", filtered[0].ID)
}

func TestPaperStoreRefilterDropsNonMatchingAddition(t *testing.T) {
	store := NewPaperStore()

	store.ApplyFilter(models.PaperFilter{Category: models.CategoryPastPaper})
	store.Add(models.Paper{
		ID:       "new-2",
		Title:    "History Model Paper 2025",
		Category: models.CategoryModelPaper,
		Subject:  models.SubjectHistory,
		Grade:    models.Grade10,
	})

	result := store.ApplyFilter(models.PaperFilter{Category: models.CategoryPastPaper})
	for _, p := range result {
		assert.NotEqual(t, "new-2", p.ID)
	}
}

func TestPaperStoreDelete(t *testing.T) {
	store := NewPaperStore()

	store.Delete("3")
	assert.Len(t, store.Papers(), 5)
	assert.Len(t, store.Filtered(), 5)
	_, ok := store.FindByID("3")
	assert.False(t, ok)

	// Absent id is a no-op.
	store.Delete("does-not-exist")
	assert.Len(t, store.Papers(), 5)
}

func TestPaperStoreIncrementDownloads(t *testing.T) {
	store := NewPaperStore()

	first, ok := store.IncrementDownloads("1")
	require.True(t, ok)
	assert.Equal(t, 46, first.Downloads)

	second, ok := store.IncrementDownloads("1")
	require.True(t, ok)
	assert.Equal(t, 47, second.Downloads)

	// Only the counter changes.
	assert.Equal(t, "Mathematics Grade 10 Past Paper 2024", second.Title)

	current, ok := store.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, 47, current.Downloads)
}

func TestPaperStoreIncrementDownloadsAbsent(t *testing.T) {
	store := NewPaperStore()

	_, ok := store.IncrementDownloads("missing")
	assert.False(t, ok)
	assert.Equal(t, 45, store.Papers()[0].Downloads)
}

func TestPaperStoreSnapshotsAreCopies(t *testing.T) {
	store := NewPaperStore()

	snapshot := store.Papers()
	snapshot[0].Title = "mutated"

	fresh, ok := store.FindByID(snapshot[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", fresh.Title)
}
