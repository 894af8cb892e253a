package handlers

import (
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/csu-scheduler/staffing-api-go/pkg/database"
	"github.com/csu-scheduler/staffing-api-go/pkg/models"
	"github.com/csu-scheduler/staffing-api-go/pkg/roster"
)

// UploadRosters accepts the course and staff roster CSVs, normalizes them,
// and stores the snapshot for later schedule generation.
func (h *Handler) UploadRosters(c *gin.Context) {
	courseFile, _ := c.FormFile("course_roster")
	staffFile, _ := c.FormFile("staff_roster")

	if courseFile == nil || staffFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_roster and staff_roster are required"})
		return
	}
	if !strings.HasSuffix(courseFile.Filename, ".csv") || !strings.HasSuffix(staffFile.Filename, ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload CSV files."})
		return
	}

	sessions, staff, err := h.parseRosters(courseFile, staffFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.saveSnapshot(sessions, staff); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save roster snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"session_rows": len(sessions),
		"staff_rows":   len(staff),
	})
}

// ScheduleCSV handles CSV file uploads for scheduling and returns the
// schedule as CSV (one row per placement) plus the shortfall summary.
func (h *Handler) ScheduleCSV(c *gin.Context) {
	courseFile, _ := c.FormFile("course_roster")
	staffFile, _ := c.FormFile("staff_roster")

	if courseFile == nil || staffFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_roster and staff_roster are required"})
		return
	}

	sessions, staff, err := h.parseRosters(courseFile, staffFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.runEngine(sessions, staff)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(sessions), len(staff))

	sessionsByID := make(map[string]models.Session, len(sessions))
	for _, s := range sessions {
		sessionsByID[s.ID] = s
	}

	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)
	writer.Write([]string{"session_id", "time_block", "course", "section", "staff_id", "veteran"})

	// Assignments iterate in sorted key order for a stable export.
	for _, id := range sortedKeys(result.Assignments) {
		sess := sessionsByID[id]
		for _, p := range result.Assignments[id].Assigned {
			writer.Write([]string{
				id,
				string(sess.TimeBlock),
				sess.Course,
				sess.Section,
				p.StaffID,
				strconv.FormatBool(p.Veteran),
			})
		}
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{
		"csv":              outCSV.String(),
		"under_staffed":    emptyIfNil(result.Shortfall.UnderStaffed),
		"unbalanced":       emptyIfNil(result.Shortfall.Unbalanced),
		"unplaced_staff":   emptyIfNil(result.Shortfall.Unplaced),
		"unbalanced_count": len(result.Shortfall.Unbalanced),
	})
}

func (h *Handler) parseRosters(courseFile, staffFile *multipart.FileHeader) ([]models.Session, []models.Staff, error) {
	cf, err := courseFile.Open()
	if err != nil {
		return nil, nil, err
	}
	defer cf.Close()
	sessions, err := roster.ParseCourses(cf)
	if err != nil {
		return nil, nil, err
	}

	sf, err := staffFile.Open()
	if err != nil {
		return nil, nil, err
	}
	defer sf.Close()
	staff, err := roster.ParseStaff(sf)
	if err != nil {
		return nil, nil, err
	}

	return sessions, staff, nil
}

func (h *Handler) saveSnapshot(sessions []models.Session, staff []models.Staff) error {
	sessionsRaw, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	staffRaw, err := json.Marshal(staff)
	if err != nil {
		return err
	}

	// Only the latest snapshot matters.
	h.DB.Where("1 = 1").Delete(&database.RosterSnapshot{})
	return h.DB.Create(&database.RosterSnapshot{
		SessionsRaw: string(sessionsRaw),
		StaffRaw:    string(staffRaw),
	}).Error
}

func (h *Handler) loadSnapshot() (*models.ScheduleInput, error) {
	var snap database.RosterSnapshot
	if err := h.DB.Order("created_at desc").First(&snap).Error; err != nil {
		return nil, err
	}

	var input models.ScheduleInput
	if err := json.Unmarshal([]byte(snap.SessionsRaw), &input.Sessions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(snap.StaffRaw), &input.Staff); err != nil {
		return nil, err
	}
	return &input, nil
}

func sortedKeys(m map[string]models.Assignment) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
