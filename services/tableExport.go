package services

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\uFEFF"

// Table is an export with a fixed column order.
type Table struct {
	Headers []string
	Rows    [][]string
}

// WriteCSV writes t for spreadsheet tools configured for pt-BR: UTF-8 with
// a byte order mark, ';' between fields, every field double quoted.
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(utf8BOM); err != nil {
		return err
	}
	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(';')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
	}
	writeLine(t.Headers)
	for _, row := range t.Rows {
		bw.WriteByte('\n')
		writeLine(row)
	}
	return bw.Flush()
}

// ReadCSV parses a file produced by WriteCSV, or any ';' separated file
// with a header row. A leading byte order mark is ignored.
func ReadCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	return Table{Headers: records[0], Rows: records[1:]}, nil
}

// WriteXLSX writes t as a single-sheet workbook with a styled, frozen header.
func WriteXLSX(w io.Writer, sheetName string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, 24); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			// phone numbers must stay text or leading zeros get lost
			if err := f.SetCellStr(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}
