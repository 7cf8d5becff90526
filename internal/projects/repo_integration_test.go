package projects_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuseLink-app/muselink-backend/internal/bootstrap"
	"github.com/MuseLink-app/muselink-backend/internal/projects"
	"github.com/MuseLink-app/muselink-backend/internal/users"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, bootstrap.Migrate(ctx, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))
	t.Cleanup(pool.Close)

	return pool
}

func newOwner(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	id, err := users.NewRepo(pool).EnsureUser(context.Background(), users.UpsertUser{
		FirebaseUID: "test-" + uuid.NewString(),
		DisplayName: "Owner",
	})
	require.NoError(t, err)
	return id
}

func TestProjectCRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	repo := projects.NewRepo(pool)
	owner := newOwner(t, pool)

	created, err := repo.Create(ctx, owner, projects.CreateProject{
		Title:       "Lo-fi beat tape",
		Description: "Looking for a guitarist",
		Genres:      []string{"lofi", "hiphop"},
		LookingFor:  []string{"guitarist"},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^muse-\d{5}-\d{4}$`, created.PublicID)
	assert.Equal(t, owner, created.OwnerID)

	got, err := repo.Get(ctx, created.PublicID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, []string{"lofi", "hiphop"}, got.Genres)

	mine, err := repo.ListMine(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	newTitle := "Lo-fi beat tape vol. 2"
	updated, err := repo.Update(ctx, owner, created.PublicID, projects.UpdateProject{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	// untouched fields survive a partial update
	assert.Equal(t, created.Description, updated.Description)

	// someone else's update is a not-found
	other := newOwner(t, pool)
	_, err = repo.Update(ctx, other, created.PublicID, projects.UpdateProject{Title: &newTitle})
	require.ErrorIs(t, err, projects.ErrProjectNotFound)

	deleted, err := repo.SoftDelete(ctx, owner, created.PublicID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.Get(ctx, created.PublicID)
	require.ErrorIs(t, err, projects.ErrProjectNotFound)
}

func TestProjectStatusTransitions(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	repo := projects.NewRepo(pool)
	owner := newOwner(t, pool)

	p, err := repo.Create(ctx, owner, projects.CreateProject{Title: "Session work"})
	require.NoError(t, err)

	closed, err := repo.SetStatus(ctx, owner, p.PublicID, projects.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, projects.StatusClosed, closed.Status)

	reopened, err := repo.SetStatus(ctx, owner, p.PublicID, projects.StatusOpen)
	require.NoError(t, err)
	assert.Equal(t, projects.StatusOpen, reopened.Status)

	_, err = repo.SetStatus(ctx, owner, p.PublicID, projects.StatusArchived)
	require.NoError(t, err)

	_, err = repo.SetStatus(ctx, owner, p.PublicID, projects.StatusOpen)
	require.ErrorIs(t, err, projects.ErrInvalidTransition)

	_, err = repo.SetStatus(ctx, owner, p.PublicID, "finished")
	require.ErrorIs(t, err, projects.ErrInvalidStatus)
}

func TestBrowseFilters(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	repo := projects.NewRepo(pool)
	owner := newOwner(t, pool)

	genre := "genre-" + uuid.NewString()[:8]
	p, err := repo.Create(ctx, owner, projects.CreateProject{
		Title:  "Filtered listing",
		Genres: []string{genre},
	})
	require.NoError(t, err)

	found, err := repo.Browse(ctx, projects.BrowseFilter{Genre: genre})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, p.PublicID, found[0].PublicID)

	none, err := repo.Browse(ctx, projects.BrowseFilter{Genre: genre, LookingFor: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
