package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/gin-gonic/gin"

	"github.com/ibam-church/membership/initializers"
	"github.com/ibam-church/membership/models"
	"github.com/ibam-church/membership/services"
)

// SetupTestDB creates a mock database and sets it as the global DB for testing.
// The shared directory cache is reset to read through the mock as well.
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)
	services.InitDirectoryCache()

	cleanup := func() {
		// let staff notification goroutines finish
		time.Sleep(10 * time.Millisecond)
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetJSONRequest attaches a JSON body request to the context.
func SetJSONRequest(c *gin.Context, method, path string, body interface{}) {
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		raw, _ = json.Marshal(b)
	}
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
}

func SetGetRequest(c *gin.Context, path string) {
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
}

// SetAuthenticatedAdmin sets what CheckAuth leaves in the context for an
// admin session.
func SetAuthenticatedAdmin(c *gin.Context, admin models.AdminUser, jti string, expiry time.Time) {
	c.Set("currentAdmin", admin)
	c.Set("admin", true)
	c.Set("tokenID", jti)
	c.Set("tokenExpiry", expiry)
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func decodeJSONArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}
