package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibam-church/membership/forms"
)

func TestPublicRegister(t *testing.T) {
	withMinistry := scenarioAPayload()
	withMinistry["form"].(map[string]interface{})["wants_ministry"] = true
	withMinistry["selectedMinistries"] = []interface{}{1, "1"}

	visitNoAddress := scenarioAPayload()
	visitNoAddress["form"].(map[string]interface{})["wants_visit"] = true

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mock sqlmock.Sqlmock)
		expectedStatus int
		expectedCode   string
		expectedKind   string
	}{
		{
			name: "scenario A is stored",
			body: scenarioAPayload(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "people" .*'Maria Silva'.*'69991234567'`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid json",
			body:           `{"form": `,
			setupMock:      func(mock sqlmock.Sqlmock) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "invalid_json",
			expectedKind:   "validation",
		},
		{
			name:           "visit without address is rejected before any write",
			body:           visitNoAddress,
			setupMock:      func(mock sqlmock.Sqlmock) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "visit_requires_address",
			expectedKind:   "validation",
		},
		{
			name: "people insert failure",
			body: scenarioAPayload(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "people"`).WillReturnError(errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "insert_people_failed",
			expectedKind:   "persistence",
		},
		{
			name: "ministry insert failure removes the person",
			body: withMinistry,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "people"`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO "people_ministries"`).WillReturnError(errors.New("foreign key violation"))
				mock.ExpectExec(`DELETE FROM "people" WHERE`).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "insert_people_ministries_failed",
			expectedKind:   "persistence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			tt.setupMock(mock)

			c, w := SetupTestContext()
			SetJSONRequest(c, http.MethodPost, "/public-register", tt.body)

			PublicRegister(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeJSON(t, w)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, true, resp["ok"])
				assert.NotEmpty(t, resp["id"])
			} else {
				assert.Equal(t, false, resp["ok"])
				assert.Equal(t, tt.expectedCode, resp["code"])
				assert.Equal(t, tt.expectedKind, resp["kind"])
				assert.NotEmpty(t, resp["error"])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func registerAnswers() map[string]interface{} {
	return map[string]interface{}{
		"name":           "Maria Silva",
		"phone":          "(69) 99123-4567",
		"birth_date":     "1990-05-10",
		"zone":           "Centro",
		"baptized":       true,
		"in_ministry":    false,
		"wants_ministry": false,
		"in_cell":        false,
		"wants_cell":     false,
		"consent_truth":  true,
		"consent_data":   true,
	}
}

func TestRegister(t *testing.T) {
	t.Run("success message", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		mock.ExpectExec(`INSERT INTO "people"`).WillReturnResult(sqlmock.NewResult(0, 1))

		c, w := SetupTestContext()
		SetJSONRequest(c, http.MethodPost, "/register", registerAnswers())

		Register(c)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeJSON(t, w)
		assert.Equal(t, true, resp["ok"])
		assert.Equal(t, forms.MsgSuccess, resp["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("client side warning", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		answers := registerAnswers()
		answers["name"] = "Jo"
		c, w := SetupTestContext()
		SetJSONRequest(c, http.MethodPost, "/register", answers)

		Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Digite seu nome completo.", decodeJSON(t, w)["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure hides details", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		mock.ExpectExec(`INSERT INTO "people"`).WillReturnError(errors.New("pq: password authentication failed"))

		c, w := SetupTestContext()
		SetJSONRequest(c, http.MethodPost, "/register", registerAnswers())

		Register(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "password authentication")
		assert.NotContains(t, w.Body.String(), "Insert people failed")
		resp := decodeJSON(t, w)
		assert.Equal(t, false, resp["ok"])
		assert.Equal(t, forms.MsgGenericFailure, resp["message"])
	})

	t.Run("invalid json", func(t *testing.T) {
		c, w := SetupTestContext()
		SetJSONRequest(c, http.MethodPost, "/register", "not json")

		Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, forms.MsgGenericFailure, decodeJSON(t, w)["message"])
	})
}

func TestMethodNotAllowed(t *testing.T) {
	c, w := SetupTestContext()
	SetGetRequest(c, "/public-register")

	MethodNotAllowed(c)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, false, decodeJSON(t, w)["ok"])
}
