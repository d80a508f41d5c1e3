package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibam-church/membership/models"
	"github.com/ibam-church/membership/services"
)

func currentDirectory(c *gin.Context) (*services.Membership, bool) {
	m, err := services.GetDirectoryCache().Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load directory", "details": err.Error()})
		return nil, false
	}
	return m, true
}

func parseMonth(raw string, fallback time.Month) (int, bool) {
	if raw == "" {
		return int(fallback), true
	}
	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}

// RefreshDirectory reloads every table in one read and rebuilds the views.
func RefreshDirectory(c *gin.Context) {
	m, err := services.GetDirectoryCache().Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh directory", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Directory refreshed",
		"total":    len(m.People()),
		"loadedAt": m.Snapshot().LoadedAt,
	})
}

func GetOverview(c *gin.Context) {
	m, ok := currentDirectory(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m.Overview())
}

func GetPeople(c *gin.Context) {
	m, ok := currentDirectory(c)
	if !ok {
		return
	}

	filter := services.PeopleFilter{
		Visit:         c.Query("visit") == "true",
		Baptism:       c.Query("baptism") == "true",
		WantsMinistry: c.Query("wants_ministry") == "true",
		WantsCell:     c.Query("wants_cell") == "true",
	}
	c.JSON(http.StatusOK, m.Entries(m.Filter(filter), time.Now()))
}

func GetPerson(c *gin.Context) {
	m, ok := currentDirectory(c)
	if !ok {
		return
	}

	p, found := m.Person(c.Param("person_id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}
	c.JSON(http.StatusOK, m.Entry(p, time.Now()))
}

func GetQueue(c *gin.Context) {
	m, ok := currentDirectory(c)
	if !ok {
		return
	}

	var people []models.Person
	switch c.Param("queue") {
	case "visits":
		people = m.WantsVisit
	case "baptism":
		people = m.BaptismInterest
	case "ministry":
		people = m.WantsMinistry
	case "cell":
		people = m.WantsCell
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown queue"})
		return
	}
	c.JSON(http.StatusOK, m.Entries(people, time.Now()))
}

// GetGroupMembers lists who is in a zone, cell or ministry bucket. Zones
// are addressed by name, the others by id.
func GetGroupMembers(c *gin.Context) {
	kind, valid := services.ParseGroupKind(c.Param("kind"))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group kind"})
		return
	}

	m, ok := currentDirectory(c)
	if !ok {
		return
	}

	g := services.GroupDescriptor{Kind: kind}
	if kind == services.GroupZone {
		g.Name = c.Param("group_id")
	} else {
		g.ID = models.ParseEntityID(c.Param("group_id"))
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":    g.Kind,
		"id":      g.ID,
		"name":    g.Name,
		"members": m.Entries(m.GroupMembers(g), time.Now()),
	})
}

func GetBirthdays(c *gin.Context) {
	month, valid := parseMonth(c.Query("month"), time.Now().Month())
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	m, ok := currentDirectory(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":  month,
		"label":  models.MonthLabel(month),
		"people": m.Entries(m.Birthdays(month), time.Now()),
	})
}

// GetOutreach returns the message staff send a person and a wa.me link
// with it prefilled.
func GetOutreach(c *gin.Context) {
	kind := services.OutreachKind(c.DefaultQuery("kind", string(services.OutreachBirthday)))

	m, ok := currentDirectory(c)
	if !ok {
		return
	}

	p, found := m.Person(c.Param("person_id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}

	text, err := services.OutreachMessage(kind, p.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid outreach kind"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind": kind,
		"text": text,
		"link": services.WhatsAppLink(p.Phone, text),
	})
}
