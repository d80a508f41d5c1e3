package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibam-church/membership/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportDirectory downloads one dashboard list as CSV (default) or XLSX.
func ExportDirectory(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format"})
		return
	}

	month, valid := parseMonth(c.Query("month"), time.Now().Month())
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	m, ok := currentDirectory(c)
	if !ok {
		return
	}

	table, base, err := m.BuildExport(c.Param("export"), month)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = xlsxContentType
		err = services.WriteXLSX(&buf, base, table)
	} else {
		err = services.WriteCSV(&buf, table)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, base, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
