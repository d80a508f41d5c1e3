package services

import (
	"time"

	"github.com/ibam-church/membership/models"
)

// DirectoryEntry is a person with their associations resolved to names.
type DirectoryEntry struct {
	models.Person
	Current_Cell       string `json:"current_cell"`
	Wanted_Cell        string `json:"wanted_cell"`
	Current_Ministries string `json:"current_ministries"`
	Wanted_Ministries  string `json:"wanted_ministries"`
	Birth_Date_BR      string `json:"birth_date_br"`
	Age                int    `json:"age"`
}

func (m *Membership) Entry(p models.Person, now time.Time) DirectoryEntry {
	return DirectoryEntry{
		Person:             p,
		Current_Cell:       m.CellName(m.CurrentCell(p.ID)),
		Wanted_Cell:        m.CellName(m.WantedCell(p.ID)),
		Current_Ministries: m.MinistryNames(m.CurrentMinistries(p.ID)),
		Wanted_Ministries:  m.MinistryNames(m.WantedMinistries(p.ID)),
		Birth_Date_BR:      p.Birth_Date.BR(),
		Age:                p.Birth_Date.AgeOn(now),
	}
}

func (m *Membership) Entries(people []models.Person, now time.Time) []DirectoryEntry {
	out := make([]DirectoryEntry, 0, len(people))
	for _, p := range people {
		out = append(out, m.Entry(p, now))
	}
	return out
}

type GroupCount struct {
	ID    models.EntityID `json:"id"`
	Name  string          `json:"name"`
	Count int             `json:"count"`
}

type MonthCount struct {
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Overview is the summary shown on the first dashboard tab.
type Overview struct {
	Total             int          `json:"total"`
	Zones             []ZoneCount  `json:"zones"`
	CellsCurrent      []GroupCount `json:"cells_current"`
	CellsWanted       []GroupCount `json:"cells_wanted"`
	MinistriesCurrent []GroupCount `json:"ministries_current"`
	MinistriesWanted  []GroupCount `json:"ministries_wanted"`
	PendingMinistry   int          `json:"pending_ministry"`
	PendingCell       int          `json:"pending_cell"`
	PendingTotal      int          `json:"pending_total"`
	AlertLevel        AlertLevel   `json:"alert_level"`
	WantsVisit        int          `json:"wants_visit"`
	BaptismInterest   int          `json:"baptism_interest"`
	Birthdays         []MonthCount `json:"birthdays"`
	LoadedAt          time.Time    `json:"loaded_at"`
}

func (m *Membership) Overview() Overview {
	o := Overview{
		Total:           len(m.snapshot.People),
		Zones:           m.ZoneCounts,
		PendingMinistry: m.PendingMinistry(),
		PendingCell:     m.PendingCell(),
		PendingTotal:    m.PendingTotal(),
		AlertLevel:      m.AlertLevel(),
		WantsVisit:      len(m.WantsVisit),
		BaptismInterest: len(m.BaptismInterest),
		LoadedAt:        m.snapshot.LoadedAt,
	}
	for _, c := range m.snapshot.Cells {
		o.CellsCurrent = append(o.CellsCurrent, GroupCount{ID: c.ID, Name: c.Name, Count: m.CellCurrentCounts[c.ID]})
		o.CellsWanted = append(o.CellsWanted, GroupCount{ID: c.ID, Name: c.Name, Count: m.CellWantedCounts[c.ID]})
	}
	for _, mi := range m.snapshot.Ministries {
		o.MinistriesCurrent = append(o.MinistriesCurrent, GroupCount{ID: mi.ID, Name: mi.Name, Count: m.MinistryCurrentCounts[mi.ID]})
		o.MinistriesWanted = append(o.MinistriesWanted, GroupCount{ID: mi.ID, Name: mi.Name, Count: m.MinistryWantedCounts[mi.ID]})
	}
	for i, n := range m.BirthdayCounts {
		o.Birthdays = append(o.Birthdays, MonthCount{Month: i + 1, Label: models.MonthLabels[i], Count: n})
	}
	return o
}
