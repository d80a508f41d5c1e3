package main

import (
	"strings"
	"time"

	"github.com/ibam-church/membership/forms"
	"github.com/ibam-church/membership/models"
)

// columnAliases maps the headers used on the paper form sheets to answer
// keys. Headers already spelled as answer keys are accepted as they are.
var columnAliases = map[string]string{
	"nome":                "name",
	"telefone":            "phone",
	"whatsapp":            "phone",
	"nascimento":          "birth_date",
	"data de nascimento":  "birth_date",
	"zona":                "zone",
	"batizado":            "baptized",
	"conversar batismo":   "baptism_contact",
	"endereço":            "address_opt_in",
	"visita":              "wants_visit",
	"rua":                 "street",
	"número":              "house_number",
	"numero":              "house_number",
	"complemento":         "complement",
	"bairro":              "neighborhood",
	"cidade":              "city",
	"referência":          "reference",
	"referencia":          "reference",
	"serve em ministério": "in_ministry",
	"quer servir":         "wants_ministry",
	"ministérios":         "ministries",
	"ministerios":         "ministries",
	"participa de célula": "in_cell",
	"quer célula":         "wants_cell",
	"célula":              "cell",
	"celula":              "cell",
	"declaração":          "consent_truth",
	"consentimento":       "consent_data",
}

func columnKey(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if key, ok := columnAliases[h]; ok {
		return key
	}
	return h
}

// normalizeBirthDate accepts dd/mm/yyyy as written on paper besides the
// canonical yyyy-mm-dd. Anything else is passed on for validation to reject.
func normalizeBirthDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t.Format(models.DateLayout)
	}
	return s
}

func splitIDs(s string) models.EntityIDList {
	var ids models.EntityIDList
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		if id := models.ParseEntityID(part); !id.IsZero() {
			ids = append(ids, id)
		}
	}
	return ids
}

// answersFromRow reads one sheet row. Unknown columns are ignored.
func answersFromRow(headers, row []string) forms.Answers {
	var a forms.Answers
	for i, header := range headers {
		if i >= len(row) {
			break
		}
		v := strings.TrimSpace(row[i])
		switch columnKey(header) {
		case "name":
			a.Name = v
		case "phone":
			a.Phone = v
		case "birth_date":
			a.Birth_Date = normalizeBirthDate(v)
		case "zone":
			a.Zone = v
		case "baptized":
			a.Baptized = forms.ParseAnswerText(v)
		case "baptism_contact":
			a.Baptism_Contact = forms.ParseAnswerText(v)
		case "address_opt_in":
			a.Address_Opt_In = forms.ParseAnswerText(v).IsTrue()
		case "wants_visit":
			a.Wants_Visit = forms.ParseAnswerText(v).IsTrue()
		case "street":
			a.Street = v
		case "house_number":
			a.House_Number = v
		case "complement":
			a.Complement = v
		case "neighborhood":
			a.Neighborhood = v
		case "city":
			a.City = v
		case "reference":
			a.Reference = v
		case "in_ministry":
			a.In_Ministry = forms.ParseAnswerText(v)
		case "wants_ministry":
			a.Wants_Ministry = forms.ParseAnswerText(v)
		case "ministries":
			a.SelectedMinistries = splitIDs(v)
		case "in_cell":
			a.In_Cell = forms.ParseAnswerText(v)
		case "wants_cell":
			a.Wants_Cell = forms.ParseAnswerText(v)
		case "cell":
			a.SelectedCell = models.ParseEntityID(v)
		case "consent_truth":
			a.Consent_Truth = forms.ParseAnswerText(v).IsTrue()
		case "consent_data":
			a.Consent_Data = forms.ParseAnswerText(v).IsTrue()
		}
	}
	return a
}
