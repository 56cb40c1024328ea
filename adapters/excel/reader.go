package excel

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads NQDS records from an Excel workbook. Each data row
// holds either the raw semicolon-delimited line in its first cell or the
// four record fields in its first four cells.
type WorkbookSource struct {
	config WorkbookConfig
}

// NewWorkbookSource creates a source for the workbook described by config
func NewWorkbookSource(config WorkbookConfig) *WorkbookSource {
	return &WorkbookSource{config: config}
}

// Name returns the workbook path
func (s *WorkbookSource) Name() string {
	return s.config.FilePath
}

// Lines reads the configured sheet and returns one record line per data row
func (s *WorkbookSource) Lines() ([]string, error) {
	log.Printf("[WorkbookSource] Reading workbook: %s", s.config.FilePath)

	if _, err := os.Stat(s.config.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("workbook not found: %s", s.config.FilePath)
	}

	startTime := time.Now()
	f, err := excelize.OpenFile(s.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", s.config.FilePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[WorkbookSource] Sheet %s read in %.2fms (%d rows)",
		sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rowsToLines(rows, s.config.HeaderRows), nil
}

// rowsToLines converts sheet rows into record lines, skipping header and blank rows
func rowsToLines(rows [][]string, headerRows int) []string {
	var lines []string
	for i, row := range rows {
		if i < headerRows {
			continue
		}
		cells := trimTrailingEmpty(row)
		switch {
		case len(cells) == 0:
			continue
		case len(cells) == 1:
			lines = append(lines, cells[0])
		default:
			lines = append(lines, strings.Join(cells, ";"))
		}
	}
	return lines
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
