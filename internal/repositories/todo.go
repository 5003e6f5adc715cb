// Package repositoriesはtodosテーブルへのデータベース操作を行います。
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go-todo-api/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository はtodosテーブルへのデータベース操作を行うための構造体です。
type TodoRepository struct {
	DB *sql.DB
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

// Create は新しいTodoタスクをデータベースに挿入し、保存されたレコードを返します。
func (r *TodoRepository) Create(t *models.TodoCreate) (*models.Todo, error) {
	// タイムスタンプはGo側で設定する (ドライバー間で挙動を揃えるため)
	now := time.Now().UTC()

	query := "INSERT INTO todos (title, description, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	result, err := r.DB.Exec(query, t.Title, t.Description, t.Completed, now, now)
	if err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	// 自動採番されたIDを取得
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}

	// 作成されたレコードを取得して返す
	return r.FindByID(int(id))
}

// FindAll はTodoタスクをデータベースから取得します。
// completed が nil でない場合は完了状態でフィルタします。
func (r *TodoRepository) FindAll(completed *bool) ([]*models.Todo, error) {
	query := "SELECT id, title, description, completed, created_at, updated_at FROM todos"
	args := []interface{}{}

	if completed != nil {
		query += " WHERE completed = ?"
		args = append(args, *completed)
	}

	// created_at が同じ場合でも順序が安定するよう id をタイブレークに使う
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		var t models.Todo
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			log.Printf("Failed to scan todo: %v", err)
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// FindByID は指定されたIDのTodoタスクをデータベースから取得します。
func (r *TodoRepository) FindByID(id int) (*models.Todo, error) {
	query := "SELECT id, title, description, completed, created_at, updated_at FROM todos WHERE id = ?"

	var t models.Todo
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to query todo by ID: %v", err)
		return nil, fmt.Errorf("could not query todo: %w", err)
	}

	return &t, nil
}

// Update は指定されたIDのTodoタスクを部分更新します。
// リクエストに含まれるフィールドだけをSET句に組み立て、書き込みがあれば updated_at も更新します。
func (r *TodoRepository) Update(id int, u *models.TodoUpdate) (*models.Todo, error) {
	fields := []string{}
	args := []interface{}{}

	if u.Title != nil {
		fields = append(fields, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Completed != nil {
		fields = append(fields, "completed = ?")
		args = append(args, *u.Completed)
	}

	// フィールドが1つも送られていない場合は何も書き込まず、現在のレコードをそのまま返す
	if len(fields) == 0 {
		return r.FindByID(id)
	}

	fields = append(fields, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE todos SET %s WHERE id = ?", strings.Join(fields, ", "))

	if _, err := r.DB.Exec(query, args...); err != nil {
		log.Printf("Failed to update todo: %v", err)
		return nil, fmt.Errorf("could not update todo: %w", err)
	}

	// MySQLのRowsAffectedは値の変わらなかった行を数えないため、
	// 行数ではなく再取得で存在しないIDと変更なしの更新を区別する
	return r.FindByID(id)
}

// Delete は指定されたIDのTodoタスクを削除します。
func (r *TodoRepository) Delete(id int) error {
	query := "DELETE FROM todos WHERE id = ?"

	result, err := r.DB.Exec(query, id)
	if err != nil {
		log.Printf("Failed to delete todo: %v", err)
		return fmt.Errorf("could not delete todo: %w", err)
	}

	// 削除された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
