// Package testutilはテスト用のデータベースとルーターのセットアップヘルパーを提供します。
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/database"
	"go-todo-api/internal/models"
	"go-todo-api/internal/routes"
)

// SetupTestDB はテスト用のインメモリSQLiteデータベースを作成し、テーブルを初期化します。
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_time_format=sqlite")
	require.NoError(t, err, "Failed to open in-memory database")

	// インメモリSQLiteはコネクションごとに別のデータベースになるため、
	// コネクションを1本に固定する
	db.SetMaxOpenConns(1)

	require.NoError(t, db.Ping(), "Failed to ping in-memory database")
	require.NoError(t, database.Migrate(db, "sqlite"), "Failed to migrate test database")

	t.Cleanup(func() { db.Close() })
	return db
}

// SetupTestRouter はテスト用のルーターとデータベースをセットアップします。
func SetupTestRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()

	// Ginをテストモードに設定
	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)
	r := routes.SetupRouter(db)
	return r, db
}

// PerformRequest はルーターに対してリクエストを実行し、レコーダーを返します。
// body が nil でない場合はJSONにエンコードして送信します。
func PerformRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

// CreateTestTodo はAPI経由でテスト用のTODOを作成し、作成されたレコードを返します。
func CreateTestTodo(t *testing.T, r http.Handler, title, description string, completed bool) *models.Todo {
	t.Helper()

	payload := map[string]interface{}{
		"title":       title,
		"description": description,
		"completed":   completed,
	}
	resp := PerformRequest(r, http.MethodPost, "/todos/", payload)
	require.Equal(t, http.StatusCreated, resp.Code, "Failed to create test todo: %s", resp.Body.String())

	var created models.Todo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return &created
}
