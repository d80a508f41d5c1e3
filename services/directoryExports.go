package services

import (
	"fmt"

	"github.com/ibam-church/membership/models"
)

const notChosen = "-"

// ExportNames lists the exports the dashboard offers.
var ExportNames = []string{"birthdays", "visits", "baptism", "ministry", "cell", "people"}

// BuildExport projects one dashboard list into a table. month (1..12) is
// only used by the birthday export. The returned base name has no extension.
func (m *Membership) BuildExport(name string, month int) (Table, string, error) {
	switch name {
	case "birthdays":
		if month < 1 || month > 12 {
			return Table{}, "", fmt.Errorf("invalid month %d", month)
		}
		t := Table{Headers: []string{"Nome", "WhatsApp", "Nascimento", "Zona"}}
		for _, p := range m.Birthdays(month) {
			t.Rows = append(t.Rows, []string{p.Name, p.Phone, p.Birth_Date.DayMonth(), p.Zone})
		}
		return t, "aniversariantes_" + models.MonthLabel(month), nil

	case "visits":
		t := Table{Headers: []string{"Nome", "WhatsApp", "Zona", "Rua", "Bairro"}}
		for _, p := range m.WantsVisit {
			t.Rows = append(t.Rows, []string{p.Name, p.Phone, p.Zone, deref(p.Street), deref(p.Neighborhood)})
		}
		return t, "fila_visitas", nil

	case "baptism":
		t := Table{Headers: []string{"Nome", "WhatsApp", "Zona", "Quer conversar?"}}
		for _, p := range m.BaptismInterest {
			t.Rows = append(t.Rows, []string{p.Name, p.Phone, p.Zone, "SIM"})
		}
		return t, "fila_batismo", nil

	case "ministry":
		t := Table{Headers: []string{"Nome", "WhatsApp", "Zona", "Quer servir em"}}
		for _, p := range m.WantsMinistry {
			t.Rows = append(t.Rows, []string{p.Name, p.Phone, p.Zone, orDash(m.MinistryNames(m.WantedMinistries(p.ID)))})
		}
		return t, "fila_ministerios", nil

	case "cell":
		t := Table{Headers: []string{"Nome", "WhatsApp", "Zona", "Quer entrar na célula"}}
		for _, p := range m.WantsCell {
			t.Rows = append(t.Rows, []string{p.Name, p.Phone, p.Zone, orDash(m.CellName(m.WantedCell(p.ID)))})
		}
		return t, "fila_celula", nil

	case "people":
		t := Table{Headers: []string{
			"Nome", "WhatsApp", "Zona",
			"Célula (atual)", "Célula (quer entrar)",
			"Ministérios (atuais)", "Ministérios (quer servir)",
		}}
		for _, p := range m.People() {
			t.Rows = append(t.Rows, []string{
				p.Name, p.Phone, p.Zone,
				orDash(m.CellName(m.CurrentCell(p.ID))),
				orDash(m.CellName(m.WantedCell(p.ID))),
				orDash(m.MinistryNames(m.CurrentMinistries(p.ID))),
				orDash(m.MinistryNames(m.WantedMinistries(p.ID))),
			})
		}
		return t, "membros", nil
	}
	return Table{}, "", fmt.Errorf("unknown export %q", name)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return notChosen
	}
	return s
}
