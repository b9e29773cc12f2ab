// Package report renders learner progress as a downloadable workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/engine"
)

const sheetName = "Lernfortschritt"

// Understanding labels in tally display order.
var tallyRows = []struct {
	key   string
	label string
}{
	{"gut", "Gut verstanden"},
	{"mittel", "Teilweise verstanden"},
	{"hilfe", "Hilfe benötigt"},
}

// WriteWorkbook writes an XLSX progress report for one session to w.
func WriteWorkbook(w io.Writer, p *engine.Progress, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	rows := [][]any{
		{"Lernbericht", ""},
		{"Erstellt am", now.Format("02.01.2006 15:04")},
		{"", ""},
		{"Name", p.Name},
		{"Aktuelles Thema", p.ActiveTopicTitle},
		{"Punktestand", p.Score},
		{"Beantwortete Fragen", p.TurnsAnswered},
		{"", ""},
		{"Verständnis", "Anzahl"},
	}
	for _, tr := range tallyRows {
		rows = append(rows, []any{tr.label, p.UnderstandingTally[tr.key]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for _, cell := range []string{"A1", "A9", "B9"} {
		if err := f.SetCellStyle(sheetName, cell, cell, header); err != nil {
			return fmt.Errorf("style %s: %w", cell, err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
