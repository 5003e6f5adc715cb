// Package databaseはデータベース接続の初期化とマイグレーションを行います。
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Driver は環境変数 DB_DRIVER から使用するドライバーを返します。
// デフォルトは sqlite (ローカルファイルベースのストア)。
func Driver() string {
	if d := os.Getenv("DB_DRIVER"); d != "" {
		return d
	}
	return "sqlite"
}

// SQLitePath は環境変数 DB_PATH からSQLiteのファイルパスを返します。
func SQLitePath() string {
	if p := os.Getenv("DB_PATH"); p != "" {
		return p
	}
	return "todos.db"
}

// GetDSN は環境変数からMySQL接続文字列 (DSN) を構築します。
func GetDSN() string {
	// main.go で godotenv.Load() が呼び出されるため、ここでは省略
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, name)
}

// InitDB はデータベース接続を初期化し、todosテーブルを作成します。
func InitDB() *sql.DB {
	driver := Driver()

	var db *sql.DB
	var err error

	switch driver {
	case "sqlite":
		path := SQLitePath()
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				log.Fatalf("Fatal: Failed to create database directory: %v", err)
			}
		}
		// _time_format=sqlite: time.Time を "YYYY-MM-DD HH:MM:SS..." 形式で保存する
		db, err = sql.Open("sqlite", "file:"+path+"?_time_format=sqlite")
		if err != nil {
			log.Fatalf("Fatal: Failed to open database connection: %v", err)
		}
	case "mysql":
		db, err = sql.Open("mysql", GetDSN())
		if err != nil {
			log.Fatalf("Fatal: Failed to open database connection: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	default:
		log.Fatalf("Fatal: Unsupported DB_DRIVER: %s", driver)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("Fatal: Failed to ping database: %v", err)
	}

	if err := Migrate(db, driver); err != nil {
		log.Fatalf("Fatal: Failed to migrate database: %v", err)
	}

	log.Printf("Successfully connected to %s database!", driver)
	return db
}

// Migrate はtodosテーブルが存在しない場合に作成します。
// AUTOINCREMENT / AUTO_INCREMENT の方言差のため、ドライバーごとにDDLを分けています。
func Migrate(db *sql.DB, driver string) error {
	var createTodoTableSQL string

	switch driver {
	case "sqlite":
		createTodoTableSQL = `
	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	case "mysql":
		createTodoTableSQL = `
	CREATE TABLE IF NOT EXISTS todos (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	default:
		return fmt.Errorf("unsupported driver: %s", driver)
	}

	if _, err := db.Exec(createTodoTableSQL); err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	return nil
}
