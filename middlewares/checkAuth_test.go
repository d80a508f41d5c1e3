package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/ibam-church/membership/initializers"
	"github.com/ibam-church/membership/models"
	"github.com/stretchr/testify/assert"
)

var adminColumns = []string{"admin_user_id", "email", "password", "name", "is_active", "created_at"}

func testSecret() string {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "test-secret-key"
		os.Setenv("SECRET", secret)
	}
	return secret
}

// Helper function to generate a signed admin token
func generateToken(claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}

func generateValidToken(adminID int, role, jti string, expiresIn time.Duration) string {
	return generateToken(jwt.MapClaims{
		"id":   float64(adminID),
		"exp":  float64(time.Now().Add(expiresIn).Unix()),
		"role": role,
		"jti":  jti,
	}, testSecret())
}

// Setup test database
func setupTestDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	oldDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
		initializers.DB = oldDB
	}

	return mock, cleanup
}

// Setup test Gin context
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	return c, w
}

func TestCheckAuth(t *testing.T) {
	RevokeToken("revoked-jti", time.Now().Add(time.Hour))

	tests := []struct {
		name             string
		authHeader       string
		mockAdminLookup  bool
		adminExists      bool
		expectedStatus   int
		expectAbort      bool
		expectAdminFlag  bool
		expectedAdminID  int
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - no Bearer prefix",
			authHeader:     "InvalidToken123",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - wrong prefix",
			authHeader:     "Basic " + generateValidToken(1, "admin", "jti-1", time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name: "invalid JWT signature",
			authHeader: "Bearer " + generateToken(jwt.MapClaims{
				"id": float64(1), "exp": float64(time.Now().Add(time.Hour).Unix()), "role": "admin", "jti": "x",
			}, "wrong-secret-key"),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + generateValidToken(1, "admin", "jti-1", -time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "token without id",
			authHeader:     "Bearer " + generateValidToken(1, "admin", "", time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "revoked token",
			authHeader:     "Bearer " + generateValidToken(1, "admin", "revoked-jti", time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:            "valid token - account not found",
			authHeader:      "Bearer " + generateValidToken(999, "admin", "jti-2", time.Hour),
			mockAdminLookup: true,
			adminExists:     false,
			expectedStatus:  http.StatusUnauthorized,
			expectAbort:     true,
		},
		{
			name:            "valid token - admin",
			authHeader:      "Bearer " + generateValidToken(2, "admin", "jti-3", time.Hour),
			mockAdminLookup: true,
			adminExists:     true,
			expectedStatus:  http.StatusOK,
			expectAdminFlag: true,
			expectedAdminID: 2,
		},
		{
			name:            "valid token - no role claim",
			authHeader:      "Bearer " + generateValidToken(2, "", "jti-4", time.Hour),
			mockAdminLookup: true,
			adminExists:     true,
			expectedStatus:  http.StatusOK,
			expectAdminFlag: false,
			expectedAdminID: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupTestDB(t)
			defer cleanup()

			if tt.mockAdminLookup {
				rows := sqlmock.NewRows(adminColumns)
				if tt.adminExists {
					rows.AddRow(2, "pastor@igreja.org", "hash", "Pastor", true, time.Now())
				}
				mock.ExpectQuery(`SELECT \* FROM "admin_user"`).WillReturnRows(rows)
			}

			c, w := setupTestContext()
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			CheckAuth(c)

			if tt.expectAbort {
				assert.True(t, c.IsAborted(), "Expected request to be aborted")
				assert.Equal(t, tt.expectedStatus, w.Code)
				_, exists := c.Get("currentAdmin")
				assert.False(t, exists)
				return
			}

			assert.False(t, c.IsAborted(), "Expected request not to be aborted")
			current, exists := c.Get("currentAdmin")
			assert.True(t, exists)
			assert.Equal(t, tt.expectedAdminID, current.(models.AdminUser).Admin_User_ID)
			assert.Equal(t, tt.expectAdminFlag, c.GetBool("admin"))
			assert.NotEmpty(t, c.GetString("tokenID"))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		admin          *models.AdminUser
		flag           bool
		expectedStatus int
		expectAbort    bool
	}{
		{"no session", nil, false, http.StatusUnauthorized, true},
		{"not an admin token", &models.AdminUser{Admin_User_ID: 1, Is_Active: true}, false, http.StatusUnauthorized, true},
		{"disabled account", &models.AdminUser{Admin_User_ID: 1, Is_Active: false}, true, http.StatusForbidden, true},
		{"active admin", &models.AdminUser{Admin_User_ID: 1, Is_Active: true}, true, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			if tt.admin != nil {
				c.Set("currentAdmin", *tt.admin)
			}
			c.Set("admin", tt.flag)

			RequireAdmin(c)

			assert.Equal(t, tt.expectAbort, c.IsAborted())
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTokenDenylist(t *testing.T) {
	assert.False(t, IsTokenRevoked("fresh"))

	RevokeToken("fresh", time.Now().Add(time.Minute))
	assert.True(t, IsTokenRevoked("fresh"))

	RevokeToken("stale", time.Now().Add(-time.Minute))
	assert.False(t, IsTokenRevoked("stale"), "already expired tokens need no entry")
}
