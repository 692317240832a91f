// controllers/settings.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateSettingsInput replaces the settings row wholesale, matching how the
// operator saves the settings screen.
type UpdateSettingsInput struct {
	BatchOptions      []string          `json:"batchOptions" binding:"required"`
	CategoryOptions   []string          `json:"categoryOptions" binding:"required"`
	PeriodOptions     []string          `json:"periodOptions" binding:"required"`
	LeadSourceOptions []string          `json:"leadSourceOptions" binding:"required"`
	SourceOptions     []string          `json:"sourceOptions" binding:"required"`
	MessageTemplates  map[string]string `json:"messageTemplates" binding:"required"`
	MessageInterval   *int              `json:"messageInterval" binding:"required"`
	WhatsappAPIURL    string            `json:"whatsappApiUrl"`
}

// GetSettings returns the singleton settings row.
func GetSettings(c *gin.Context) {
	var settings models.Settings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Settings not found")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings validates the payload shape before any write; an invalid
// payload leaves the stored row untouched.
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for key := range input.MessageTemplates {
		if _, err := strconv.Atoi(key); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest,
				"Message template keys must be day offsets, got: "+key)
			return
		}
	}
	if *input.MessageInterval < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Message interval must be non-negative")
		return
	}

	cleaned := map[string]models.StringList{
		"batchOptions":      cleanOptions(input.BatchOptions),
		"categoryOptions":   cleanOptions(input.CategoryOptions),
		"periodOptions":     cleanOptions(input.PeriodOptions),
		"leadSourceOptions": cleanOptions(input.LeadSourceOptions),
		"sourceOptions":     cleanOptions(input.SourceOptions),
	}
	for name, list := range cleaned {
		// All-blank entries survive the required binding but clean to nothing.
		if len(list) == 0 {
			utils.RespondWithError(c, http.StatusBadRequest,
				"Option list "+name+" must contain at least one non-empty entry")
			return
		}
	}

	var settings models.Settings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Settings not found")
		return
	}

	settings.BatchOptions = cleaned["batchOptions"]
	settings.CategoryOptions = cleaned["categoryOptions"]
	settings.PeriodOptions = cleaned["periodOptions"]
	settings.LeadSourceOptions = cleaned["leadSourceOptions"]
	settings.SourceOptions = cleaned["sourceOptions"]
	settings.MessageTemplates = models.TemplateMap(input.MessageTemplates)
	settings.MessageInterval = *input.MessageInterval
	settings.WhatsappAPIURL = input.WhatsappAPIURL

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// cleanOptions trims entries and drops empties, preserving order.
func cleanOptions(opts []string) models.StringList {
	out := make(models.StringList, 0, len(opts))
	for _, o := range opts {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
