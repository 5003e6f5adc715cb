// Package routesはroutingを行います。
package routes

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-todo-api/internal/handlers"
	"go-todo-api/internal/repositories"
	"go-todo-api/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sql.DB) *gin.Engine {
	r := gin.Default()

	// CORS対策
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	// 各レスポンスにリクエストIDを付与
	r.Use(RequestID())

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db)

	// サービス
	todoService := services.NewTodoService(todoRepo)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService)

	// ルーティングの設定
	r.GET("/", handlers.WelcomeHandler)
	r.GET("/health", func(c *gin.Context) { handlers.HealthHandler(c, db) })

	r.POST("/todos/", todoHandler.CreateTodoHandler)
	r.GET("/todos/", todoHandler.GetTodosHandler)
	// 固定フィルタ付きの一覧は :id より先に静的パスとして登録する
	r.GET("/todos/completed/", todoHandler.GetCompletedTodosHandler)
	r.GET("/todos/pending/", todoHandler.GetPendingTodosHandler)
	r.GET("/todos/:id", todoHandler.GetTodoByIDHandler)
	r.PUT("/todos/:id", todoHandler.UpdateTodoHandler)
	r.DELETE("/todos/:id", todoHandler.DeleteTodoHandler)

	return r
}
