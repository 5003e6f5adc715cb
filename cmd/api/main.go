package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"go-todo-api/internal/database"
	"go-todo-api/internal/routes"
)

func main() {
	// .env が無くても環境変数だけで動くようにエラーは警告に留める
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	db := database.InitDB()
	defer db.Close()

	r := routes.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// サーバー起動
	log.Printf("Server listening on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
