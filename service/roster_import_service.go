package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"idcard-sheet/models"
	"idcard-sheet/repository"
)

const rosterSheet = "Students"

// rosterHeaders is the header row of the roster workbook
var rosterHeaders = []string{"Name", "Father Name", "Class", "GR #"}

// RosterImportService adds students to the sheet from an .xlsx roster
type RosterImportService struct {
	cards CardServiceInterface
}

// NewRosterImportService creates a new RosterImportService
func NewRosterImportService(cards CardServiceInterface) *RosterImportService {
	return &RosterImportService{cards: cards}
}

// GenerateTemplate builds an empty roster workbook with the header row and one example row
func (s *RosterImportService) GenerateTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(rosterSheet, cell, header)
	}
	example := []string{"Muhammad Ali", "Abdul Rehman", "VIII-B", "1042"}
	for i, value := range example {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(rosterSheet, cell, value)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(rosterSheet, "A1", "D1", headerStyle)
	f.SetColWidth(rosterSheet, "A", "B", 28)
	f.SetColWidth(rosterSheet, "C", "D", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// Import reads the first sheet of the workbook and adds one card per data row.
// Rows after the sheet is full are counted as SkippedOverLimit.
func (s *RosterImportService) Import(r io.Reader) (models.ImportResult, error) {
	result := models.ImportResult{Errors: []string{}}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return result, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return result, fmt.Errorf("failed to read rows: %w", err)
	}

	for i, row := range rows {
		rowNum := i + 1
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		if s.cards.Remaining() == 0 {
			result.SkippedOverLimit++
			continue
		}

		record, err := BuildRecord(models.StudentInput{
			Name:               cellAt(row, 0),
			FatherName:         cellAt(row, 1),
			ClassName:          cellAt(row, 2),
			RegistrationNumber: cellAt(row, 3),
		}, "")
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if _, err := s.cards.Add(record); err != nil {
			if errors.Is(err, repository.ErrCapacityExceeded) {
				result.SkippedOverLimit++
				continue
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Added++
	}

	log.Printf("📥 Roster import: %d processed, %d added, %d over limit, %d failed",
		result.TotalProcessed, result.Added, result.SkippedOverLimit, result.Failed)
	return result, nil
}

func isHeaderRow(row []string) bool {
	return strings.EqualFold(strings.TrimSpace(cellAt(row, 0)), rosterHeaders[0])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
