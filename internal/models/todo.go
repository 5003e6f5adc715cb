// Package modelsはTodoを定義します。
package models

import (
	"time"
)

type Todo struct {
	ID          int       `json:"id"`          // 主キー
	Title       string    `json:"title"`       // タスクのタイトル（必須）
	Description string    `json:"description"` // 詳細（任意、デフォルトは空文字列）
	Completed   bool      `json:"completed"`   // 完了状態
	CreatedAt   time.Time `json:"created_at"`  // 作成日時
	UpdatedAt   time.Time `json:"updated_at"`  // 更新日時
}

// TodoCreate は POST /todos/ のリクエストボディです。
// bindingタグ: Ginでのリクエストバリデーション用 (titleは必須かつ非空)
type TodoCreate struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TodoUpdate は PUT /todos/:id のリクエストボディです。
// ポインタにすることで「フィールドが送られていない」と「ゼロ値」を区別し、
// 送られたフィールドだけを更新します。
type TodoUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
