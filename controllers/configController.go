package controllers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/ibam-church/membership/initializers"
	"github.com/ibam-church/membership/models"
	"github.com/ibam-church/membership/services"
)

const minConfigNameLength = 2

func validName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	return name, utf8.RuneCountInString(name) >= minConfigNameLength
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func configID(c *gin.Context) (models.EntityID, bool) {
	id := models.ParseEntityID(c.Param("id"))
	if id.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return "", false
	}
	return id, true
}

// invalidateDirectory makes the dashboard reload after a config change.
func invalidateDirectory() {
	if cache := services.GetDirectoryCache(); cache != nil {
		cache.Invalidate()
	}
}

// insertConfigRow inserts record into table and scans the stored row into dest.
func insertConfigRow(c *gin.Context, table string, record goqu.Record, dest interface{}) bool {
	_, err := initializers.DB.Insert(table).Rows(record).Returning("*").Executor().
		ScanStructContext(c.Request.Context(), dest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create " + table, "details": err.Error()})
		return false
	}
	invalidateDirectory()
	return true
}

func updateConfigRow(c *gin.Context, table string, id models.EntityID, record goqu.Record, dest interface{}) bool {
	found, err := initializers.DB.Update(table).Set(record).Where(goqu.C("id").Eq(id)).Returning("*").Executor().
		ScanStructContext(c.Request.Context(), dest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update " + table, "details": err.Error()})
		return false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return false
	}
	invalidateDirectory()
	return true
}

func deleteConfigRow(c *gin.Context, table string) {
	id, ok := configID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete(table).Where(goqu.C("id").Eq(id)).Executor().ExecContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete from " + table, "details": err.Error()})
		return
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	invalidateDirectory()
	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "id": id})
}

func CreateMinistry(c *gin.Context) {
	var body models.MinistryWrite
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, valid := validName(body.Name)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome muito curto."})
		return
	}

	var ministry models.Ministry
	if insertConfigRow(c, "ministries", goqu.Record{"name": name}, &ministry) {
		c.JSON(http.StatusCreated, ministry)
	}
}

func UpdateMinistry(c *gin.Context) {
	id, ok := configID(c)
	if !ok {
		return
	}

	var body models.MinistryWrite
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, valid := validName(body.Name)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome muito curto."})
		return
	}

	var ministry models.Ministry
	if updateConfigRow(c, "ministries", id, goqu.Record{"name": name}, &ministry) {
		c.JSON(http.StatusOK, ministry)
	}
}

func DeleteMinistry(c *gin.Context) {
	deleteConfigRow(c, "ministries")
}

func cellRecord(body models.CellWrite, name string) goqu.Record {
	isActive := true
	if body.Is_Active != nil {
		isActive = *body.Is_Active
	}
	return goqu.Record{
		"name":         name,
		"leaders":      trimmedOrNil(body.Leaders),
		"whatsapp":     trimmedOrNil(body.Whatsapp),
		"zone":         trimmedOrNil(body.Zone),
		"neighborhood": trimmedOrNil(body.Neighborhood),
		"weekday":      trimmedOrNil(body.Weekday),
		"time":         trimmedOrNil(body.Time),
		"address":      trimmedOrNil(body.Address),
		"is_active":    isActive,
	}
}

func CreateCell(c *gin.Context) {
	var body models.CellWrite
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, valid := validName(body.Name)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome muito curto."})
		return
	}

	var cell models.Cell
	if insertConfigRow(c, "cells", cellRecord(body, name), &cell) {
		c.JSON(http.StatusCreated, cell)
	}
}

func UpdateCell(c *gin.Context) {
	id, ok := configID(c)
	if !ok {
		return
	}

	var body models.CellWrite
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, valid := validName(body.Name)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome muito curto."})
		return
	}

	var cell models.Cell
	if updateConfigRow(c, "cells", id, cellRecord(body, name), &cell) {
		c.JSON(http.StatusOK, cell)
	}
}

func DeleteCell(c *gin.Context) {
	deleteConfigRow(c, "cells")
}

// eventRecord validates body and builds the row to store.
func eventRecord(body models.EventWrite) (goqu.Record, string) {
	title, valid := validName(body.Title)
	if !valid {
		return nil, "Título muito curto."
	}

	start, err := models.ParseDate(strings.TrimSpace(body.Start_Date))
	if err != nil {
		return nil, "Informe a data de início (AAAA-MM-DD)."
	}

	var end interface{}
	if raw := trimmedOrNil(body.End_Date); raw != nil {
		d, err := models.ParseDate(*raw)
		if err != nil {
			return nil, "Data de término inválida."
		}
		if d < start {
			return nil, "A data de término é anterior ao início."
		}
		end = d
	}

	isPublic := true
	if body.Is_Public != nil {
		isPublic = *body.Is_Public
	}

	return goqu.Record{
		"title":      title,
		"start_date": start,
		"end_date":   end,
		"time":       trimmedOrNil(body.Time),
		"location":   trimmedOrNil(body.Location),
		"price":      trimmedOrNil(body.Price),
		"notes":      trimmedOrNil(body.Notes),
		"is_public":  isPublic,
	}, ""
}

func CreateEvent(c *gin.Context) {
	var body models.EventWrite
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, problem := eventRecord(body)
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	var event models.Event
	if insertConfigRow(c, "events", record, &event) {
		c.JSON(http.StatusCreated, event)
	}
}

func UpdateEvent(c *gin.Context) {
	id, ok := configID(c)
	if !ok {
		return
	}

	var body models.EventWrite
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, problem := eventRecord(body)
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	var event models.Event
	if updateConfigRow(c, "events", id, record, &event) {
		c.JSON(http.StatusOK, event)
	}
}

func DeleteEvent(c *gin.Context) {
	deleteConfigRow(c, "events")
}

// SubscribeStaffDevice adds a staff phone to the push topic used for new
// registration alerts.
func SubscribeStaffDevice(c *gin.Context) {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Token) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Device token is required"})
		return
	}

	push := services.GetPushNotificationService()
	if push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are not configured"})
		return
	}

	if err := push.SubscribeStaffDevice(strings.TrimSpace(body.Token)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to subscribe device", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device subscribed", "topic": push.Topic()})
}
