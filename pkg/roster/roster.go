// Package roster ingests the two uploaded CSV tables and normalizes them
// into the engine's in-memory model: raw time ranges become canonical
// blocks, truthy markers become booleans, names are trimmed. The engine
// never re-parses any of this.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

// Expected course roster columns.
var courseColumns = []string{
	"Course", "Section", "Days", "StartTime", "EndTime", "Room",
	"Min # of SPTs Required",
}

// Expected staff roster columns, availability columns aside (those are
// recognized by header shape, one per canonical block).
var staffColumns = []string{
	"Name:",
	"Partner Preference 1:", "Partner Preference 2:", "Partner Preference 3:",
	"1st Choice", "2nd Choice",
	"Veteran?",
}

// Truthy reports whether a raw roster cell marks availability or veteran
// status. Rosters arrive with a mix of markers; this is the single place
// they are normalized.
func Truthy(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "y", "yes", "true", "t", "x", "✓", "available", "avail":
		return true
	}
	return false
}

// NormalizeName trims a roster name cell; the trimmed name is the staff id.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}

// SessionID builds the composite session identity.
func SessionID(block models.TimeBlock, course, section string) string {
	return fmt.Sprintf("%s|%s|%s", block, course, section)
}

func readTable(r io.Reader) (header map[string]int, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	header = make(map[string]int, len(head))
	for i, h := range head {
		header[strings.TrimSpace(h)] = i
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func checkColumns(header map[string]int, required []string, label string) error {
	var missing []string
	for _, col := range required {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s roster missing columns: %s", label, strings.Join(missing, ", "))
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ParseCourses reads the course roster CSV into sessions. Every row must map
// onto exactly one canonical time block; a row that maps to none is a data
// error for the whole upload, not a silent skip.
func ParseCourses(r io.Reader) ([]models.Session, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("course roster is empty")
	}
	if err := checkColumns(header, courseColumns, "course"); err != nil {
		return nil, err
	}

	sessions := make([]models.Session, 0, len(rows))
	for i, row := range rows {
		course := strings.TrimSpace(cell(row, header["Course"]))
		section := strings.TrimSpace(cell(row, header["Section"]))
		block, err := MapTimeBlock(cell(row, header["StartTime"]), cell(row, header["EndTime"]))
		if err != nil {
			return nil, fmt.Errorf("course roster row %d (%s %s): %w", i+2, course, section, err)
		}

		minRequired := 1
		if raw := strings.TrimSpace(cell(row, header["Min # of SPTs Required"])); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				minRequired = n
			}
		}

		sessions = append(sessions, models.Session{
			ID:          SessionID(block, course, section),
			TimeBlock:   block,
			Course:      course,
			Section:     section,
			MinRequired: minRequired,
		})
	}
	return sessions, nil
}

// ParseStaff reads the staff roster CSV. Availability columns are any
// headers that parse as a time range inside a canonical block; at least one
// is required.
func ParseStaff(r io.Reader) ([]models.Staff, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("staff roster is empty")
	}
	if err := checkColumns(header, staffColumns, "staff"); err != nil {
		return nil, err
	}

	availCols := make(map[int]models.TimeBlock)
	for h, idx := range header {
		if block, err := MapTimeRange(h); err == nil {
			availCols[idx] = block
		}
	}
	if len(availCols) == 0 {
		return nil, fmt.Errorf("staff roster has no availability columns")
	}

	staff := make([]models.Staff, 0, len(rows))
	for _, row := range rows {
		name := NormalizeName(cell(row, header["Name:"]))
		if name == "" {
			continue
		}

		var partners []string
		for _, col := range []string{"Partner Preference 1:", "Partner Preference 2:", "Partner Preference 3:"} {
			if p := NormalizeName(cell(row, header[col])); p != "" {
				partners = append(partners, p)
			}
		}
		var courses []string
		for _, col := range []string{"1st Choice", "2nd Choice"} {
			if c := strings.TrimSpace(cell(row, header[col])); c != "" {
				courses = append(courses, c)
			}
		}

		avail := make([]models.TimeBlock, 0, len(availCols))
		for _, block := range models.TimeBlocks {
			for idx, b := range availCols {
				if b == block && Truthy(cell(row, idx)) {
					avail = append(avail, block)
					break
				}
			}
		}

		staff = append(staff, models.Staff{
			ID:           name,
			PartnerPrefs: partners,
			CoursePrefs:  courses,
			Availability: avail,
			Veteran:      Truthy(cell(row, header["Veteran?"])),
		})
	}
	return staff, nil
}
