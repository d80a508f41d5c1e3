package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gin-gonic/gin"

	"github.com/ibam-church/membership/initializers"
	"github.com/ibam-church/membership/models"
	"github.com/ibam-church/membership/services"
)

const secretariatGreeting = "Olá, secretaria IBAM! Eu queria falar com vocês."

const (
	homeCellsLimit  = 6
	homeEventsLimit = 3
	maxEventsLimit  = 100
)

// likeEscaper makes % and _ in search text match literally under
// postgres' default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// searchFilter matches q case-insensitively against any of cols.
func searchFilter(q string, cols ...string) exp.Expression {
	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(q)) + "%"
	ors := make([]exp.Expression, 0, len(cols))
	for _, col := range cols {
		ors = append(ors, goqu.C(col).ILike(pattern))
	}
	return goqu.Or(ors...)
}

func activeCellsQuery(q string) *goqu.SelectDataset {
	query := initializers.DB.From("cells").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("name").Asc())
	if strings.TrimSpace(q) != "" {
		query = query.Where(searchFilter(q, "name", "leaders", "zone", "neighborhood"))
	}
	return query
}

func publicEventsQuery(q string, today models.Date) *goqu.SelectDataset {
	query := initializers.DB.From("events").
		Where(
			goqu.C("is_public").IsTrue(),
			goqu.C("start_date").Gte(today),
		).
		Order(goqu.C("start_date").Asc())
	if strings.TrimSpace(q) != "" {
		query = query.Where(searchFilter(q, "title", "location", "notes"))
	}
	return query
}

func GetPublicMinistries(c *gin.Context) {
	ministries := []models.Ministry{}
	err := initializers.DB.From("ministries").Order(goqu.C("name").Asc()).
		ScanStructsContext(c.Request.Context(), &ministries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ministries", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ministries)
}

func GetPublicCells(c *gin.Context) {
	cells := []models.Cell{}
	err := activeCellsQuery(c.Query("q")).ScanStructsContext(c.Request.Context(), &cells)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cells", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cells)
}

func GetPublicEvents(c *gin.Context) {
	query := publicEventsQuery(c.Query("q"), models.DateOf(time.Now()))

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxEventsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		query = query.Limit(uint(limit))
	}

	events := []models.Event{}
	if err := query.ScanStructsContext(c.Request.Context(), &events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load events", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetPublicHome returns what the landing page shows: a few active cells,
// the next public events and, when configured, a link to message the
// secretariat.
func GetPublicHome(c *gin.Context) {
	ctx := c.Request.Context()

	cells := []models.Cell{}
	if err := activeCellsQuery("").Limit(homeCellsLimit).ScanStructsContext(ctx, &cells); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cells", "details": err.Error()})
		return
	}

	events := []models.Event{}
	err := publicEventsQuery("", models.DateOf(time.Now())).Limit(homeEventsLimit).ScanStructsContext(ctx, &events)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load events", "details": err.Error()})
		return
	}

	var contact string
	if phone := initializers.GetEnv("SECRETARIAT_WHATSAPP", ""); phone != "" {
		contact = services.WhatsAppLink(phone, secretariatGreeting)
	}

	c.JSON(http.StatusOK, gin.H{
		"cells":       cells,
		"events":      events,
		"secretariat": contact,
	})
}
