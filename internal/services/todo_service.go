// Package servicesはTodo関連のビジネスロジックを扱います。
package services

import (
	"errors"

	"go-todo-api/internal/models"
	"go-todo-api/internal/repositories"
)

// ErrEmptyTitle は更新時にtitleを空文字列にしようとした場合のエラーです。
// titleが空にならないという不変条件は更新にも適用されます。
var ErrEmptyTitle = errors.New("title must not be empty")

// TodoService はTodo関連のビジネスロジックを扱います。
type TodoService struct {
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// CreateTodo は新しいTodoを作成します。
func (s *TodoService) CreateTodo(req *models.TodoCreate) (*models.Todo, error) {
	return s.todoRepo.Create(req)
}

// GetTodos はすべてのTodoを取得します。
func (s *TodoService) GetTodos() ([]*models.Todo, error) {
	return s.todoRepo.FindAll(nil)
}

// GetCompletedTodos は完了済みのTodoだけを取得します。
func (s *TodoService) GetCompletedTodos() ([]*models.Todo, error) {
	completed := true
	return s.todoRepo.FindAll(&completed)
}

// GetPendingTodos は未完了のTodoだけを取得します。
func (s *TodoService) GetPendingTodos() ([]*models.Todo, error) {
	completed := false
	return s.todoRepo.FindAll(&completed)
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(id int) (*models.Todo, error) {
	return s.todoRepo.FindByID(id)
}

// UpdateTodo は指定IDのTodoを部分更新します。
func (s *TodoService) UpdateTodo(id int, req *models.TodoUpdate) (*models.Todo, error) {
	if req.Title != nil && *req.Title == "" {
		return nil, ErrEmptyTitle
	}
	return s.todoRepo.Update(id, req)
}

// DeleteTodo は指定IDのTodoを削除します。
func (s *TodoService) DeleteTodo(id int) error {
	return s.todoRepo.Delete(id)
}
