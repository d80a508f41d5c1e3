package services

import (
	"sort"
	"strings"
	"time"

	"github.com/ibam-church/membership/models"
)

// Snapshot is one full read of the membership tables.
type Snapshot struct {
	People           []models.Person
	Ministries       []models.Ministry
	Cells            []models.Cell
	PeopleMinistries []models.PersonMinistry
	PeopleCells      []models.PersonCell
	LoadedAt         time.Time
}

// AssociationStatus tells apart people already taking part in a group
// from people who asked to join it.
type AssociationStatus int

const (
	NoAssociation AssociationStatus = iota
	Current
	Wanted
)

func (s AssociationStatus) String() string {
	switch s {
	case Current:
		return "current"
	case Wanted:
		return "wanted"
	default:
		return "none"
	}
}

// ClassifyMinistries places all of a person's ministry rows in one
// bucket. The person's wants_ministry flag decides for every row at once.
func ClassifyMinistries(p models.Person, ministryIDs []models.EntityID) AssociationStatus {
	if len(ministryIDs) == 0 {
		return NoAssociation
	}
	if p.Wants_Ministry {
		return Wanted
	}
	return Current
}

// ClassifyCell is ClassifyMinistries for the person's cell, driven by wants_cell.
func ClassifyCell(p models.Person, cellID models.EntityID) AssociationStatus {
	if cellID.IsZero() {
		return NoAssociation
	}
	if p.Wants_Cell {
		return Wanted
	}
	return Current
}

type AlertLevel string

const (
	AlertNormal   AlertLevel = "normal"
	AlertElevated AlertLevel = "elevated"
	AlertHigh     AlertLevel = "high"
)

const (
	highPendingThreshold     = 30
	elevatedPendingThreshold = 10
)

// PendingAlertLevel grades the number of people waiting for a ministry or cell.
func PendingAlertLevel(pending int) AlertLevel {
	switch {
	case pending >= highPendingThreshold:
		return AlertHigh
	case pending >= elevatedPendingThreshold:
		return AlertElevated
	default:
		return AlertNormal
	}
}

type GroupKind string

const (
	GroupZone            GroupKind = "zone"
	GroupCellCurrent     GroupKind = "cell_current"
	GroupCellWanted      GroupKind = "cell_wanted"
	GroupMinistryCurrent GroupKind = "ministry_current"
	GroupMinistryWanted  GroupKind = "ministry_wanted"
)

func ParseGroupKind(s string) (GroupKind, bool) {
	switch k := GroupKind(s); k {
	case GroupZone, GroupCellCurrent, GroupCellWanted, GroupMinistryCurrent, GroupMinistryWanted:
		return k, true
	}
	return "", false
}

// GroupDescriptor names a drill-down bucket. Zones are matched by Name,
// cells and ministries by ID.
type GroupDescriptor struct {
	Kind GroupKind
	ID   models.EntityID
	Name string
}

type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
}

// PeopleFilter selects the quick filters of the directory. Set filters
// are combined with AND.
type PeopleFilter struct {
	Visit         bool
	Baptism       bool
	WantsMinistry bool
	WantsCell     bool
}

// Membership holds every view derived from one Snapshot. It is built once
// by Aggregate and never changed afterwards.
type Membership struct {
	snapshot Snapshot

	personByID   map[string]models.Person
	ministryByID map[models.EntityID]models.Ministry
	cellByID     map[models.EntityID]models.Cell

	ministriesByPerson map[string][]models.EntityID
	cellByPerson       map[string]models.EntityID

	currentMinistries map[string][]models.EntityID
	wantedMinistries  map[string][]models.EntityID
	currentCell       map[string]models.EntityID
	wantedCell        map[string]models.EntityID

	WantsVisit      []models.Person
	BaptismInterest []models.Person
	WantsMinistry   []models.Person
	WantsCell       []models.Person

	ZoneCounts            []ZoneCount
	CellCurrentCounts     map[models.EntityID]int
	CellWantedCounts      map[models.EntityID]int
	MinistryCurrentCounts map[models.EntityID]int
	MinistryWantedCounts  map[models.EntityID]int
	BirthdayCounts        [12]int
}

// Aggregate derives all dashboard views from s. It only reads s, so two
// calls on the same snapshot give equal results.
func Aggregate(s Snapshot) *Membership {
	m := &Membership{
		snapshot:              s,
		personByID:            make(map[string]models.Person, len(s.People)),
		ministryByID:          make(map[models.EntityID]models.Ministry, len(s.Ministries)),
		cellByID:              make(map[models.EntityID]models.Cell, len(s.Cells)),
		ministriesByPerson:    make(map[string][]models.EntityID),
		cellByPerson:          make(map[string]models.EntityID),
		currentMinistries:     make(map[string][]models.EntityID),
		wantedMinistries:      make(map[string][]models.EntityID),
		currentCell:           make(map[string]models.EntityID),
		wantedCell:            make(map[string]models.EntityID),
		CellCurrentCounts:     make(map[models.EntityID]int),
		CellWantedCounts:      make(map[models.EntityID]int),
		MinistryCurrentCounts: make(map[models.EntityID]int),
		MinistryWantedCounts:  make(map[models.EntityID]int),
	}

	for _, p := range s.People {
		m.personByID[p.ID] = p
	}
	for _, mi := range s.Ministries {
		m.ministryByID[mi.ID] = mi
	}
	for _, c := range s.Cells {
		m.cellByID[c.ID] = c
	}

	seen := make(map[models.PersonMinistry]struct{}, len(s.PeopleMinistries))
	for _, row := range s.PeopleMinistries {
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		m.ministriesByPerson[row.Person_ID] = append(m.ministriesByPerson[row.Person_ID], row.Ministry_ID)
	}
	// one meaningful cell per person: the last row read wins, which is the
	// highest cell id since LoadSnapshot orders the join rows
	for _, row := range s.PeopleCells {
		m.cellByPerson[row.Person_ID] = row.Cell_ID
	}

	for pid, ids := range m.ministriesByPerson {
		p, ok := m.personByID[pid]
		if !ok {
			continue
		}
		switch ClassifyMinistries(p, ids) {
		case Current:
			m.currentMinistries[pid] = ids
		case Wanted:
			m.wantedMinistries[pid] = ids
		}
	}
	for pid, cid := range m.cellByPerson {
		p, ok := m.personByID[pid]
		if !ok {
			continue
		}
		switch ClassifyCell(p, cid) {
		case Current:
			m.currentCell[pid] = cid
		case Wanted:
			m.wantedCell[pid] = cid
		}
	}

	zoneCounts := make(map[string]int, len(models.Zones))
	for _, p := range s.People {
		if p.Wants_Visit {
			m.WantsVisit = append(m.WantsVisit, p)
		}
		if p.WantsBaptismConversation() {
			m.BaptismInterest = append(m.BaptismInterest, p)
		}
		if p.Wants_Ministry {
			m.WantsMinistry = append(m.WantsMinistry, p)
		}
		if p.Wants_Cell {
			m.WantsCell = append(m.WantsCell, p)
		}
		if p.Zone != "" {
			zoneCounts[p.Zone]++
		}
		if month := p.Birth_Date.Month(); month > 0 {
			m.BirthdayCounts[month-1]++
		}
		if cid, ok := m.currentCell[p.ID]; ok {
			m.CellCurrentCounts[cid]++
		}
		if cid, ok := m.wantedCell[p.ID]; ok {
			m.CellWantedCounts[cid]++
		}
		for _, mid := range m.currentMinistries[p.ID] {
			m.MinistryCurrentCounts[mid]++
		}
		for _, mid := range m.wantedMinistries[p.ID] {
			m.MinistryWantedCounts[mid]++
		}
	}
	m.ZoneCounts = buildZoneCounts(zoneCounts)

	return m
}

// buildZoneCounts lists the fixed zones first, zero-filled, then any
// other zone found in the data in alphabetical order.
func buildZoneCounts(counts map[string]int) []ZoneCount {
	out := make([]ZoneCount, 0, len(models.Zones)+len(counts))
	known := make(map[string]struct{}, len(models.Zones))
	for _, z := range models.Zones {
		known[z] = struct{}{}
		out = append(out, ZoneCount{Zone: z, Count: counts[z]})
	}
	var extra []string
	for z := range counts {
		if _, ok := known[z]; !ok {
			extra = append(extra, z)
		}
	}
	sort.Strings(extra)
	for _, z := range extra {
		out = append(out, ZoneCount{Zone: z, Count: counts[z]})
	}
	return out
}

func (m *Membership) Snapshot() Snapshot { return m.snapshot }

// People returns every person, newest first.
func (m *Membership) People() []models.Person { return m.snapshot.People }

func (m *Membership) Ministries() []models.Ministry { return m.snapshot.Ministries }

func (m *Membership) Cells() []models.Cell { return m.snapshot.Cells }

func (m *Membership) Person(id string) (models.Person, bool) {
	p, ok := m.personByID[id]
	return p, ok
}

func (m *Membership) CurrentMinistries(personID string) []models.EntityID {
	return m.currentMinistries[personID]
}

func (m *Membership) WantedMinistries(personID string) []models.EntityID {
	return m.wantedMinistries[personID]
}

func (m *Membership) CurrentCell(personID string) models.EntityID {
	return m.currentCell[personID]
}

func (m *Membership) WantedCell(personID string) models.EntityID {
	return m.wantedCell[personID]
}

// MinistryNames joins the names of ids with ", ", skipping unknown ids.
func (m *Membership) MinistryNames(ids []models.EntityID) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if mi, ok := m.ministryByID[id]; ok && mi.Name != "" {
			names = append(names, mi.Name)
		}
	}
	return strings.Join(names, ", ")
}

func (m *Membership) CellName(id models.EntityID) string {
	if id.IsZero() {
		return ""
	}
	return m.cellByID[id].Name
}

func (m *Membership) PendingMinistry() int { return len(m.WantsMinistry) }
func (m *Membership) PendingCell() int     { return len(m.WantsCell) }
func (m *Membership) PendingTotal() int    { return m.PendingMinistry() + m.PendingCell() }

func (m *Membership) AlertLevel() AlertLevel {
	return PendingAlertLevel(m.PendingTotal())
}

// GroupMembers resolves who is in a drill-down bucket, in directory order.
func (m *Membership) GroupMembers(g GroupDescriptor) []models.Person {
	var match func(p models.Person) bool
	switch g.Kind {
	case GroupZone:
		match = func(p models.Person) bool { return p.Zone == g.Name }
	case GroupCellCurrent:
		match = func(p models.Person) bool {
			cid, ok := m.currentCell[p.ID]
			return ok && cid == g.ID
		}
	case GroupCellWanted:
		match = func(p models.Person) bool {
			cid, ok := m.wantedCell[p.ID]
			return ok && cid == g.ID
		}
	case GroupMinistryCurrent:
		match = func(p models.Person) bool { return containsID(m.currentMinistries[p.ID], g.ID) }
	case GroupMinistryWanted:
		match = func(p models.Person) bool { return containsID(m.wantedMinistries[p.ID], g.ID) }
	default:
		return nil
	}

	var out []models.Person
	for _, p := range m.snapshot.People {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Filter applies the directory quick filters.
func (m *Membership) Filter(f PeopleFilter) []models.Person {
	out := make([]models.Person, 0, len(m.snapshot.People))
	for _, p := range m.snapshot.People {
		if f.Visit && !p.Wants_Visit {
			continue
		}
		if f.Baptism && !p.WantsBaptismConversation() {
			continue
		}
		if f.WantsMinistry && !p.Wants_Ministry {
			continue
		}
		if f.WantsCell && !p.Wants_Cell {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Birthdays returns people born in month (1..12) sorted by day of month.
func (m *Membership) Birthdays(month int) []models.Person {
	var out []models.Person
	for _, p := range m.snapshot.People {
		if p.Birth_Date.Month() == month {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Birth_Date.Day() < out[j].Birth_Date.Day()
	})
	return out
}

// BirthdaysOn returns people whose birthday falls on the given day.
func (m *Membership) BirthdaysOn(day time.Time) []models.Person {
	var out []models.Person
	for _, p := range m.Birthdays(int(day.Month())) {
		if p.Birth_Date.Day() == day.Day() {
			out = append(out, p)
		}
	}
	return out
}

func containsID(ids []models.EntityID, id models.EntityID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
