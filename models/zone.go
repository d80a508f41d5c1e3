package models

// Zones is the fixed list of regions offered on the registration form,
// in display order.
var Zones = []string{
	"Zona Norte",
	"Zona Sul",
	"Zona Leste",
	"Zona Oeste",
	"Centro",
	"Candeias do Jamari",
	"Outra cidade / Interior",
}

// MonthLabels are the short month names used by the birthday views,
// indexed by month-1.
var MonthLabels = []string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthLabels[month-1]
}
