package controllers

import (
	"errors"
	"net/http"
	"time"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMemberInput defines the expected JSON structure for creating a member
type CreateMemberInput struct {
	Name        string  `json:"name" binding:"required"`
	Mobile      string  `json:"mobile" binding:"required"`
	Email       string  `json:"email"`
	PaidBy      string  `json:"paidBy"`
	Batch       string  `json:"batch"`
	Category    string  `json:"category"`
	LeadSource  string  `json:"leadSource"`
	Source      string  `json:"source"`
	RenewalDate string  `json:"renewalDate" binding:"required"`
	Period      string  `json:"period" binding:"required"`
	Fees        float64 `json:"fees"`

	// ConfirmDuplicate acknowledges an already-registered mobile. Without it
	// a duplicate is rejected with 409 and the existing member.
	ConfirmDuplicate bool `json:"confirmDuplicate"`
}

// UpdateMemberInput defines the expected JSON structure for updating a member
type UpdateMemberInput struct {
	Name        *string  `json:"name"`
	Mobile      *string  `json:"mobile"`
	Email       *string  `json:"email"`
	PaidBy      *string  `json:"paidBy"`
	Batch       *string  `json:"batch"`
	Category    *string  `json:"category"`
	LeadSource  *string  `json:"leadSource"`
	Source      *string  `json:"source"`
	RenewalDate *string  `json:"renewalDate"`
	Period      *string  `json:"period"`
	Fees        *float64 `json:"fees"`
}

// findByMobile looks up a member by normalized mobile. The check-then-create
// window is accepted for single-operator use; there is no uniqueness
// constraint at the storage layer.
func findByMobile(mobile string) (*models.Member, error) {
	var existing models.Member
	err := config.DB.Where("mobile = ?", utils.NormalizeMobile(mobile)).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

// CheckMobile backs the form-side duplicate guard.
func CheckMobile(c *gin.Context) {
	mobile := c.Query("mobile")
	if mobile == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "mobile query parameter required")
		return
	}

	existing, err := findByMobile(mobile)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if existing == nil {
		c.JSON(http.StatusOK, gin.H{"isDuplicate": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isDuplicate": true, "existing": existing})
}

// CreateMember creates a new member, consulting the duplicate guard first
func CreateMember(c *gin.Context) {
	var input CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Mobile) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number format")
		return
	}

	existing, err := findByMobile(input.Mobile)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if existing != nil && !input.ConfirmDuplicate {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":    "Member with this mobile number already exists",
			"existing": existing,
		})
		return
	}

	today := time.Now()
	due := utils.CalcDueDate(input.RenewalDate, input.Period)

	member := models.Member{
		ID:           uuid.New(),
		Name:         input.Name,
		Mobile:       utils.NormalizeMobile(input.Mobile),
		Email:        input.Email,
		PaidBy:       input.PaidBy,
		Batch:        input.Batch,
		Category:     input.Category,
		LeadSource:   input.LeadSource,
		Source:       input.Source,
		RenewalDate:  input.RenewalDate,
		OriginalDate: input.RenewalDate,
		Period:       input.Period,
		Fees:         input.Fees,
		Status:       utils.CalcStatus(due, today),
	}
	if due != nil {
		member.DueDate = due.Format("2006-01-02")
	}

	if err := config.DB.Create(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create member")
		return
	}

	c.JSON(http.StatusCreated, member.Project(today))
}

// GetMembers lists projected member views, applying the operator's search,
// status filter and sort from query parameters.
func GetMembers(c *gin.Context) {
	var members []models.Member
	if err := config.DB.Order("renewal_date desc").Find(&members).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	today := time.Now()
	views := make([]models.MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, m.Project(today))
	}

	query := models.MemberQuery{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		Ascending: c.DefaultQuery("order", "asc") != "desc",
	}

	c.JSON(http.StatusOK, query.Apply(views))
}

// GetMember retrieves a specific member by ID, projected
func GetMember(c *gin.Context) {
	memberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	var member models.Member
	if err := config.DB.First(&member, "id = ?", memberUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, member.Project(time.Now()))
}

// UpdateMember updates an existing member, recomputing the due date cache
func UpdateMember(c *gin.Context) {
	memberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	var input UpdateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var member models.Member
	if err := config.DB.First(&member, "id = ?", memberUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Mobile != nil {
		if !utils.ValidatePhone(*input.Mobile) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number format")
			return
		}
		normalized := utils.NormalizeMobile(*input.Mobile)
		if member.Mobile != normalized {
			existing, err := findByMobile(normalized)
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			if existing != nil {
				utils.RespondWithError(c, http.StatusConflict, "Another member with this mobile number already exists")
				return
			}
		}
		member.Mobile = normalized
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.PaidBy != nil {
		member.PaidBy = *input.PaidBy
	}
	if input.Batch != nil {
		member.Batch = *input.Batch
	}
	if input.Category != nil {
		member.Category = *input.Category
	}
	if input.LeadSource != nil {
		member.LeadSource = *input.LeadSource
	}
	if input.Source != nil {
		member.Source = *input.Source
	}
	if input.RenewalDate != nil {
		member.RenewalDate = *input.RenewalDate
	}
	if input.Period != nil {
		member.Period = *input.Period
	}
	if input.Fees != nil {
		member.Fees = *input.Fees
	}

	// Recompute the caches on every edit.
	today := time.Now()
	due := utils.CalcDueDate(member.RenewalDate, member.Period)
	member.DueDate = ""
	if due != nil {
		member.DueDate = due.Format("2006-01-02")
	}
	member.Status = utils.CalcStatus(due, today)

	if err := config.DB.Save(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}

	c.JSON(http.StatusOK, member.Project(today))
}

// ToggleFreeze flips the freeze flag. Freezing is operator intent only: it
// does not block the send paths.
func ToggleFreeze(c *gin.Context) {
	memberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	var member models.Member
	if err := config.DB.First(&member, "id = ?", memberUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	member.Freeze = !member.Freeze
	if err := config.DB.Model(&member).Update("freeze", member.Freeze).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": member.ID, "freeze": member.Freeze})
}
