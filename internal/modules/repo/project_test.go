package repo

import (
	"context"
	"testing"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestProjectRepo_CreateFromIdea(t *testing.T) {
	d := setupTestDB(t)
	r := NewProjectRepo(d)
	ctx := context.Background()
	alice := seedUser(t, d, "alice")

	idea := &model.Idea{Title: "Puzzle", Content: "A puzzle game", CreatedBy: alice.ID}
	require.NoError(t, d.Create(idea).Error)

	p := &model.Project{Name: idea.Title, OwnerID: alice.ID, SourceIdeaID: &idea.ID}
	require.NoError(t, r.CreateFromIdea(ctx, p))

	var reloaded model.Idea
	require.NoError(t, d.First(&reloaded, "id = ?", idea.ID).Error)
	assert.True(t, reloaded.IsConvertedToProject)

	t.Run("second promotion rolls back", func(t *testing.T) {
		// a fresh project would violate the unique source index or the flag check
		dup := &model.Project{Name: "again", OwnerID: alice.ID, SourceIdeaID: &idea.ID}
		err := r.CreateFromIdea(ctx, dup)
		assert.Error(t, err)

		var n int64
		require.NoError(t, d.Model(&model.Project{}).Where("source_idea_id = ?", idea.ID).Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})

	t.Run("flag already set rolls back", func(t *testing.T) {
		flagged := &model.Idea{Content: "flagged", CreatedBy: alice.ID, IsConvertedToProject: true}
		require.NoError(t, d.Create(flagged).Error)

		np := &model.Project{Name: "x", OwnerID: alice.ID, SourceIdeaID: &flagged.ID}
		err := r.CreateFromIdea(ctx, np)
		assert.ErrorIs(t, err, ErrAlreadyConverted)

		var n int64
		require.NoError(t, d.Model(&model.Project{}).Where("source_idea_id = ?", flagged.ID).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("get with idea preloads source", func(t *testing.T) {
		got, err := r.GetOwned(ctx, p.ID, alice.ID, true)
		require.NoError(t, err)
		require.NotNil(t, got.Idea)
		assert.Equal(t, idea.ID, got.Idea.ID)
		assert.Equal(t, model.ProjectStatusConcept, got.Status)
	})
}

func TestProjectRepo_ListAndUpdate(t *testing.T) {
	d := setupTestDB(t)
	r := NewProjectRepo(d)
	ctx := context.Background()
	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")

	first := seedProject(t, d, alice.ID, "first")
	second := seedProject(t, d, alice.ID, "second")
	seedProject(t, d, bob.ID, "bob's")

	// touching first moves it to the front
	time.Sleep(5 * time.Millisecond)
	updated, err := r.UpdateOwned(ctx, first.ID, alice.ID, map[string]any{
		"name":   "renamed",
		"genres": datatypes.JSONSlice[string]{"RPG"},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, []string{"RPG"}, []string(updated.Genres))

	items, err := r.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)

	_, err = r.UpdateOwned(ctx, first.ID, bob.ID, map[string]any{"name": "stolen"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepo_DeleteOwnedCascades(t *testing.T) {
	d := setupTestDB(t)
	r := NewProjectRepo(d)
	ctx := context.Background()
	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")

	p := seedProject(t, d, alice.ID, "doomed")
	seedTask(t, d, p.ID, "t1", model.TaskStatusTodo, model.TaskPriorityLow, time.Now())
	require.NoError(t, d.Create(&model.Doc{ProjectID: p.ID, Type: model.DocTypeGDD, Title: "gdd"}).Error)

	assert.ErrorIs(t, r.DeleteOwned(ctx, p.ID, bob.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, r.DeleteOwned(ctx, uuid.New(), alice.ID), gorm.ErrRecordNotFound)

	require.NoError(t, r.DeleteOwned(ctx, p.ID, alice.ID))

	var tasks, docs, projects int64
	d.Model(&model.Task{}).Where("project_id = ?", p.ID).Count(&tasks)
	d.Model(&model.Doc{}).Where("project_id = ?", p.ID).Count(&docs)
	d.Model(&model.Project{}).Where("id = ?", p.ID).Count(&projects)
	assert.Zero(t, tasks)
	assert.Zero(t, docs)
	assert.Zero(t, projects)
}

func TestProjectRepo_SavePrediction(t *testing.T) {
	d := setupTestDB(t)
	r := NewProjectRepo(d)
	ctx := context.Background()
	alice := seedUser(t, d, "alice")
	p := seedProject(t, d, alice.ID, "p")

	got, err := r.GetOwned(ctx, p.ID, alice.ID, false)
	require.NoError(t, err)
	assert.Nil(t, got.SuccessPrediction)

	pred := &model.SuccessPrediction{
		Probability:  0.72,
		Confidence:   "high",
		Verdict:      "likely",
		ModelVersion: "v1",
		PredictedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, r.SavePrediction(ctx, p.ID, pred))

	got, err = r.GetOwned(ctx, p.ID, alice.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got.SuccessPrediction)
	assert.Equal(t, 0.72, got.SuccessPrediction.Probability)
	assert.Equal(t, "v1", got.SuccessPrediction.ModelVersion)
	assert.True(t, pred.PredictedAt.Equal(got.SuccessPrediction.PredictedAt))
}
