package forms

import (
	"encoding/json"
	"testing"

	"github.com/ibam-church/membership/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAnswers(t *testing.T) {
	body := `{
		"name": "João Pereira",
		"phone": "69 99988-7766",
		"birth_date": "1985-11-02",
		"zone": "Zona Sul",
		"baptized": false,
		"baptism_contact": true,
		"address_opt_in": true,
		"wants_visit": true,
		"street": "Rua Um",
		"house_number": "45",
		"neighborhood": "Cohab",
		"in_ministry": false,
		"wants_ministry": true,
		"in_cell": false,
		"wants_cell": false,
		"consent_truth": true,
		"consent_data": true,
		"selectedMinistries": ["2", 2, "louvor"],
		"selectedCell": "9"
	}`

	var a Answers
	require.NoError(t, json.Unmarshal([]byte(body), &a))

	q := FromAnswers(a)
	assert.Nil(t, q.Validate())
	assert.Equal(t, "69999887766", q.Phone)
	assert.Equal(t, models.Yes, q.BaptismContact)
	assert.Equal(t, DefaultCity, q.City)
	assert.Equal(t, []models.EntityID{"2", "louvor"}, q.SelectedMinistries)
	assert.True(t, q.SelectedCell.IsZero(), "cell picker is hidden so the selection is dropped")

	p := q.Submission()
	assert.Equal(t, models.Yes, p.Form.Wants_Ministry)
	assert.Equal(t, models.No, p.Form.Wants_Cell)
	assert.Equal(t, models.Yes, p.Form.Wants_Visit)
}

func TestFromAnswersDropsContactWhenBaptized(t *testing.T) {
	q := FromAnswers(Answers{Baptized: models.Yes, Baptism_Contact: models.Yes})
	assert.Equal(t, models.Unanswered, q.BaptismContact)
}

func TestParseAnswerText(t *testing.T) {
	tests := map[string]models.Answer{
		"Sim":   models.Yes,
		" s ":   models.Yes,
		"TRUE":  models.Yes,
		"não":   models.No,
		"Nao":   models.No,
		"0":     models.No,
		"":      models.Unanswered,
		"talvez": models.Unanswered,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseAnswerText(in), in)
	}
}
