package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibam-church/membership/models"
	"github.com/ibam-church/membership/services"
)

func TestAnswersFromRow(t *testing.T) {
	sheet := "\uFEFF" + `"Nome";"WhatsApp";"Nascimento";"Zona";"Batizado";"Serve em ministério";"Quer servir";"Ministérios";"Participa de célula";"Quer célula";"Declaração";"Consentimento";"Observação"` + "\n" +
		`"Maria Silva";"(69) 99123-4567";"10/05/1990";"Centro";"Sim";"não";"sim";"1, louvor";"n";"n";"x";"x";"chegou pela irmã Ana"`

	table, err := services.ReadCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	a := answersFromRow(table.Headers, table.Rows[0])
	assert.Equal(t, "Maria Silva", a.Name)
	assert.Equal(t, "(69) 99123-4567", a.Phone)
	assert.Equal(t, "1990-05-10", a.Birth_Date)
	assert.Equal(t, "Centro", a.Zone)
	assert.Equal(t, models.Yes, a.Baptized)
	assert.Equal(t, models.No, a.In_Ministry)
	assert.Equal(t, models.Yes, a.Wants_Ministry)
	assert.Equal(t, models.EntityIDList{"1", "louvor"}, a.SelectedMinistries)
	assert.Equal(t, models.No, a.In_Cell)
	assert.True(t, a.Consent_Truth)
	assert.True(t, a.Consent_Data)
}

func TestAnswersFromShortRow(t *testing.T) {
	a := answersFromRow([]string{"name", "phone", "zone"}, []string{"João Pedro"})
	assert.Equal(t, "João Pedro", a.Name)
	assert.Empty(t, a.Phone)
	assert.Empty(t, a.Zone)
}

func TestNormalizeBirthDate(t *testing.T) {
	assert.Equal(t, "1990-05-10", normalizeBirthDate("10/05/1990"))
	assert.Equal(t, "1990-05-10", normalizeBirthDate(" 1990-05-10 "))
	assert.Equal(t, "31/02/1990", normalizeBirthDate("31/02/1990"))
}
