// Package handlersはHTTPリクエストをサービス呼び出しに変換します。
package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-todo-api/internal/models"
	"go-todo-api/internal/repositories"
	"go-todo-api/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// WelcomeHandler は GET / のウェルカムメッセージを返します。
func WelcomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Todo API!"})
}

// HealthHandler はデータベース接続の健全性を確認します。
func HealthHandler(c *gin.Context, db *sql.DB) {
	if err := db.Ping(); err != nil {
		log.Printf("DB Ping failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database connection failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
}

// CreateTodoHandler は新しいTodoを作成します。
// titleが欠けている・空・型が不正な場合は 422 を返します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var req models.TodoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	createdTodo, err := h.todoService.CreateTodo(&req)
	if err != nil {
		log.Printf("Failed to create todo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save todo to database"})
		return
	}
	c.JSON(http.StatusCreated, createdTodo)
}

// GetTodosHandler はすべてのTodoを取得します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetTodos()
	if err != nil {
		log.Printf("Failed to fetch todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos from database"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetCompletedTodosHandler は完了済みのTodoだけを取得します。
func (h *TodoHandler) GetCompletedTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetCompletedTodos()
	if err != nil {
		log.Printf("Failed to fetch completed todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos from database"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetPendingTodosHandler は未完了のTodoだけを取得します。
func (h *TodoHandler) GetPendingTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetPendingTodos()
	if err != nil {
		log.Printf("Failed to fetch pending todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos from database"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodoByIDHandler は指定されたIDのTodoを取得します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	foundTodo, err := h.todoService.GetTodoByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		log.Printf("Failed to fetch todo from database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todo from database"})
		return
	}
	c.JSON(http.StatusOK, foundTodo)
}

// UpdateTodoHandler は指定されたIDのTodoを部分更新します。
// リクエストボディに含まれるフィールドだけが変更されます。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.TodoUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	updatedTodo, err := h.todoService.UpdateTodo(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Title must not be empty"})
			return
		}
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		log.Printf("Failed to update todo in database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo in database"})
		return
	}
	c.JSON(http.StatusOK, updatedTodo)
}

// DeleteTodoHandler は指定されたIDのTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.todoService.DeleteTodo(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		log.Printf("Failed to delete todo from database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo from database"})
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID はパスパラメータ :id を整数に変換します。不正な場合は 400 を返します。
func parseID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}
