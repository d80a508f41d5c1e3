package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOverview(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()
	expectDirectorySnapshot(mock)

	c, w := SetupTestContext()
	SetGetRequest(c, "/admin/overview")

	GetOverview(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, float64(0), resp["pending_ministry"])
	assert.Equal(t, float64(1), resp["pending_cell"])
	assert.Equal(t, "normal", resp["alert_level"])
	assert.Equal(t, float64(1), resp["wants_visit"])
	assert.Equal(t, float64(1), resp["baptism_interest"])

	ministries := resp["ministries_current"].([]interface{})
	require.Len(t, ministries, 1)
	assert.Equal(t, float64(1), ministries[0].(map[string]interface{})["count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectoryIsCachedUntilRefresh(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()
	expectDirectorySnapshot(mock)

	for i := 0; i < 2; i++ {
		c, w := SetupTestContext()
		SetGetRequest(c, "/admin/people")
		GetPeople(c)
		require.Equal(t, http.StatusOK, w.Code)
	}
	require.NoError(t, mock.ExpectationsWereMet(), "second read is served from the cache")

	expectDirectorySnapshot(mock)
	c, w := SetupTestContext()
	SetJSONRequest(c, http.MethodPost, "/admin/refresh", "")
	RefreshDirectory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeJSON(t, w)["total"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshDirectoryFailure(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	c, w := SetupTestContext()
	SetJSONRequest(c, http.MethodPost, "/admin/refresh", "")

	RefreshDirectory(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "too many connections")
}

func TestGetPeopleFilters(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"everyone newest first", "/admin/people", []string{"Ana Souza", "Bruno Lima"}},
		{"visit requests", "/admin/people?visit=true", []string{"Ana Souza"}},
		{"baptism interest", "/admin/people?baptism=true", []string{"Bruno Lima"}},
		{"combined filters", "/admin/people?visit=true&baptism=true", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			expectDirectorySnapshot(mock)

			c, w := SetupTestContext()
			SetGetRequest(c, tt.path)

			GetPeople(c)

			require.Equal(t, http.StatusOK, w.Code)
			var names []string
			for _, entry := range decodeJSONArray(t, w) {
				names = append(names, entry["name"].(string))
			}
			if len(tt.expected) == 0 {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tt.expected, names)
			}
		})
	}
}

func TestGetPerson(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()
	expectDirectorySnapshot(mock)

	c, w := SetupTestContext()
	SetGetRequest(c, "/admin/people/p-ana")
	c.Params = gin.Params{{Key: "person_id", Value: "p-ana"}}

	GetPerson(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Louvor", resp["current_ministries"])
	assert.Equal(t, "", resp["wanted_ministries"])
	assert.Equal(t, "20/05/1995", resp["birth_date_br"])

	c, w = SetupTestContext()
	SetGetRequest(c, "/admin/people/missing")
	c.Params = gin.Params{{Key: "person_id", Value: "missing"}}

	GetPerson(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQueue(t *testing.T) {
	tests := []struct {
		queue          string
		expectedStatus int
		expectedCount  int
	}{
		{"visits", http.StatusOK, 1},
		{"baptism", http.StatusOK, 1},
		{"ministry", http.StatusOK, 0},
		{"cell", http.StatusOK, 1},
		{"donations", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.queue, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			expectDirectorySnapshot(mock)

			c, w := SetupTestContext()
			SetGetRequest(c, "/admin/queues/"+tt.queue)
			c.Params = gin.Params{{Key: "queue", Value: tt.queue}}

			GetQueue(c)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Len(t, decodeJSONArray(t, w), tt.expectedCount)
			}
		})
	}
}

func TestGetGroupMembers(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		groupID        string
		expectedStatus int
		expectedCount  int
	}{
		{"zone by name", "zone", "Zona Sul", http.StatusOK, 1},
		{"current ministry by id", "ministry_current", "1", http.StatusOK, 1},
		{"zero padded id matches", "ministry_current", "01", http.StatusOK, 1},
		{"wanted ministry", "ministry_wanted", "1", http.StatusOK, 0},
		{"unknown kind", "family", "1", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			if tt.expectedStatus == http.StatusOK {
				expectDirectorySnapshot(mock)
			}

			c, w := SetupTestContext()
			SetGetRequest(c, "/admin/groups/"+tt.kind+"/"+url.PathEscape(tt.groupID))
			c.Params = gin.Params{{Key: "kind", Value: tt.kind}, {Key: "group_id", Value: tt.groupID}}

			GetGroupMembers(c)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Len(t, decodeJSON(t, w)["members"], tt.expectedCount)
			}
		})
	}
}

func TestGetBirthdays(t *testing.T) {
	t.Run("month with a birthday", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()
		expectDirectorySnapshot(mock)

		c, w := SetupTestContext()
		SetGetRequest(c, "/admin/birthdays?month=5")

		GetBirthdays(c)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeJSON(t, w)
		assert.Equal(t, "Mai", resp["label"])
		assert.Len(t, resp["people"], 1)
	})

	t.Run("invalid month", func(t *testing.T) {
		c, w := SetupTestContext()
		SetGetRequest(c, "/admin/birthdays?month=13")

		GetBirthdays(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetOutreach(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()
	expectDirectorySnapshot(mock)

	c, w := SetupTestContext()
	SetGetRequest(c, "/admin/people/p-bruno/outreach?kind=baptism")
	c.Params = gin.Params{{Key: "person_id", Value: "p-bruno"}}

	GetOutreach(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Contains(t, resp["text"], "Bruno Lima")
	assert.Contains(t, resp["link"], "https://wa.me/5569998765432?text=")
}
