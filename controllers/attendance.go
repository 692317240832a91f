// controllers/attendance.go
package controllers

import (
	"encoding/csv"
	"io"
	"net/http"
	"strings"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceRow is one parsed row of a Zoom-style attendance export, matched
// against the member list.
type AttendanceRow struct {
	Topic         string `json:"topic"`
	Name          string `json:"name"`
	Join          string `json:"join"`
	Leave         string `json:"leave"`
	Duration      string `json:"duration"`
	Email         string `json:"email"`
	MatchedMobile string `json:"matchedMobile"` // "-" when no member matched
}

// ImportAttendance accepts a CSV upload and matches each row to a member by
// email (case-insensitive) or by any digits in the name column.
func ImportAttendance(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "CSV file required")
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to open upload")
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // exports vary in trailing columns

	header, err := reader.Read()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid CSV: missing header")
		return
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	var members []models.Member
	if err := config.DB.Find(&members).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	byEmail := make(map[string]string, len(members))
	byMobile := make(map[string]string, len(members))
	for _, m := range members {
		if m.Email != "" {
			byEmail[strings.ToLower(m.Email)] = m.Mobile
		}
		byMobile[m.Mobile] = m.Mobile
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []AttendanceRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows rather than failing the whole import.
			continue
		}

		row := AttendanceRow{
			Topic:         field(record, "Topic"),
			Name:          field(record, "Name (original name)"),
			Join:          field(record, "Join time"),
			Leave:         field(record, "Leave time"),
			Duration:      field(record, "Duration (minutes)"),
			Email:         field(record, "Email"),
			MatchedMobile: "-",
		}
		if mobile, ok := byEmail[strings.ToLower(row.Email)]; ok && row.Email != "" {
			row.MatchedMobile = mobile
		} else if digits := utils.NormalizeMobile(row.Name); digits != "" {
			if mobile, ok := byMobile[digits]; ok {
				row.MatchedMobile = mobile
			}
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":    rows,
		"total":   len(rows),
		"matched": countMatched(rows),
	})
}

func countMatched(rows []AttendanceRow) int {
	n := 0
	for _, r := range rows {
		if r.MatchedMobile != "-" {
			n++
		}
	}
	return n
}
