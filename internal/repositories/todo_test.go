package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/database"
	"go-todo-api/internal/models"
)

// newTestDB はテスト用のインメモリSQLiteデータベースを作成します。
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_time_format=sqlite")
	require.NoError(t, err)

	// インメモリSQLiteはコネクションごとに別のデータベースになるため、
	// コネクションを1本に固定する
	db.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db, "sqlite"))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	created, err := repo.Create(&models.TodoCreate{Title: "Learn API", Description: "x"})
	require.NoError(t, err)

	assert.NotZero(t, created.ID, "Expected a non-zero Todo ID")
	assert.Equal(t, "Learn API", created.Title)
	assert.Equal(t, "x", created.Description)
	assert.False(t, created.Completed, "Expected completed to default to false")
	assert.False(t, created.CreatedAt.IsZero(), "Expected CreatedAt to be set")
	assert.False(t, created.UpdatedAt.IsZero(), "Expected UpdatedAt to be set")

	// 作成直後のFindByIDは作成時に返されたレコードと一致する
	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Title, found.Title)
	assert.Equal(t, created.Description, found.Description)
	assert.Equal(t, created.Completed, found.Completed)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
}

func TestCreate_IDsAreUnique(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	seen := map[int]bool{}
	for i := 0; i < 5; i++ {
		created, err := repo.Create(&models.TodoCreate{Title: "Task"})
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "Expected a not previously issued ID")
		seen[created.ID] = true
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	_, err := repo.FindByID(99999)
	assert.True(t, errors.Is(err, ErrTodoNotFound))
}

func TestFindAll_FilterPartition(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	_, err := repo.Create(&models.TodoCreate{Title: "Pending 1"})
	require.NoError(t, err)
	_, err = repo.Create(&models.TodoCreate{Title: "Done 1", Completed: true})
	require.NoError(t, err)
	_, err = repo.Create(&models.TodoCreate{Title: "Pending 2"})
	require.NoError(t, err)

	all, err := repo.FindAll(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	completed := true
	done, err := repo.FindAll(&completed)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Done 1", done[0].Title)

	pending := false
	open, err := repo.FindAll(&pending)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	// 2つの集合はすべてのTodoを重複なく分割する
	ids := map[int]bool{}
	for _, todo := range done {
		ids[todo.ID] = true
	}
	for _, todo := range open {
		assert.False(t, ids[todo.ID], "Expected completed and pending sets to be disjoint")
		ids[todo.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestFindAll_EmptyReturnsEmptySlice(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	todos, err := repo.FindAll(nil)
	require.NoError(t, err)
	assert.NotNil(t, todos, "Expected an empty slice, not nil")
	assert.Len(t, todos, 0)
}

func TestFindAll_NewestFirst(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	_, err := repo.Create(&models.TodoCreate{Title: "First"})
	require.NoError(t, err)
	_, err = repo.Create(&models.TodoCreate{Title: "Second"})
	require.NoError(t, err)

	todos, err := repo.FindAll(nil)
	require.NoError(t, err)
	require.Len(t, todos, 2)

	// 作成日時の降順 (同時刻の場合はIDの降順) を期待
	assert.Equal(t, "Second", todos[0].Title)
	assert.Equal(t, "First", todos[1].Title)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	created, err := repo.Create(&models.TodoCreate{Title: "Original", Description: "keep me"})
	require.NoError(t, err)

	// completedだけを更新し、他のフィールドはそのまま残ることを確認
	completed := true
	updated, err := repo.Update(created.ID, &models.TodoUpdate{Completed: &completed})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.True(t, updated.Completed)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "Expected CreatedAt to be immutable")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "Expected UpdatedAt to be refreshed")
}

func TestUpdate_NoFieldsReturnsRecordUnchanged(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	created, err := repo.Create(&models.TodoCreate{Title: "Untouched"})
	require.NoError(t, err)

	// 空の更新は書き込みを行わず、updated_at もそのまま残る
	updated, err := repo.Update(created.ID, &models.TodoUpdate{})
	require.NoError(t, err)

	assert.Equal(t, "Untouched", updated.Title)
	assert.False(t, updated.Completed)
	assert.True(t, updated.UpdatedAt.Equal(created.UpdatedAt), "Expected UpdatedAt to be untouched")
}

func TestUpdate_RepeatedSameValues(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	created, err := repo.Create(&models.TodoCreate{Title: "Repeat"})
	require.NoError(t, err)

	// 同じ値での更新を繰り返しても、存在するIDがNotFoundになってはいけない
	completed := true
	first, err := repo.Update(created.ID, &models.TodoUpdate{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := repo.Update(created.ID, &models.TodoUpdate{Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, created.ID, second.ID)
	assert.True(t, second.Completed)
	assert.Equal(t, "Repeat", second.Title)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	title := "Non Existent"
	_, err := repo.Update(99999, &models.TodoUpdate{Title: &title})
	assert.True(t, errors.Is(err, ErrTodoNotFound))

	// 空の更新でも存在しないIDはNotFound
	_, err = repo.Update(99999, &models.TodoUpdate{})
	assert.True(t, errors.Is(err, ErrTodoNotFound))
}

func TestDelete_ThenFindByIDNotFound(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	created, err := repo.Create(&models.TodoCreate{Title: "Todo to delete"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))

	_, err = repo.FindByID(created.ID)
	assert.True(t, errors.Is(err, ErrTodoNotFound))
}

func TestDelete_NotFound(t *testing.T) {
	repo := NewTodoRepository(newTestDB(t))

	err := repo.Delete(99999)
	assert.True(t, errors.Is(err, ErrTodoNotFound))
}
