// internal/handlers/appraisal.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luxeval/luxeval-backend/internal/appraisal"
	"github.com/luxeval/luxeval-backend/internal/i18n"
	"github.com/luxeval/luxeval-backend/internal/models"
	"github.com/luxeval/luxeval-backend/internal/services"
	"github.com/luxeval/luxeval-backend/internal/utils"
)

type AppraisalHandler struct {
	appraisalService *services.AppraisalService
	storageService   *services.StorageService
}

func NewAppraisalHandler(appraisalService *services.AppraisalService, storageService *services.StorageService) *AppraisalHandler {
	return &AppraisalHandler{
		appraisalService: appraisalService,
		storageService:   storageService,
	}
}

// AppraisalRequest carries the declared item attributes. Enum values are
// checked here so the pricing engine only ever sees validated input.
type AppraisalRequest struct {
	Brand         string   `json:"brand" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	Model         string   `json:"model,omitempty"`
	OriginalPrice float64  `json:"original_price" validate:"min=0"`
	Condition     string   `json:"condition" validate:"required,item_condition"`
	HasTags       bool     `json:"has_tags"`
	HasBox        bool     `json:"has_box"`
	DesignTrend   string   `json:"design_trend,omitempty" validate:"omitempty,design_trend"`
	DemandLevel   string   `json:"demand_level,omitempty" validate:"omitempty,demand_level"`
	Images        []string `json:"images,omitempty" validate:"omitempty,max=5,dive,url"`
}

func (r *AppraisalRequest) toItem() appraisal.LuxuryItem {
	trend := models.DesignTrend(r.DesignTrend)
	if trend == "" {
		trend = models.TrendClassic
	}
	demand := models.DemandLevel(r.DemandLevel)
	if demand == "" {
		demand = models.DemandMedium
	}

	return appraisal.LuxuryItem{
		Brand:         r.Brand,
		Category:      r.Category,
		Model:         r.Model,
		OriginalPrice: r.OriginalPrice,
		Condition:     models.ItemCondition(r.Condition),
		HasTags:       r.HasTags,
		HasBox:        r.HasBox,
		DesignTrend:   trend,
		DemandLevel:   demand,
		Images:        r.Images,
	}
}

// POST /appraisals
// Full AI-assisted appraisal. Works anonymously; authenticated requests are
// also saved to the caller's history.
func (h *AppraisalHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req AppraisalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var userID *uuid.UUID
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if parsed, err := uuid.Parse(userIDStr); err == nil {
			userID = &parsed
		}
	}

	result, err := h.appraisalService.Appraise(c.Request.Context(), userID, req.toItem())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyAppraisalCreated),
		"appraisal": result,
	})
}

// POST /appraisals/quick
// Local heuristic only. No external calls, no persistence; needs the original
// retail price to anchor the estimate.
func (h *AppraisalHandler) Quick(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req AppraisalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if req.OriginalPrice <= 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "original_price"), nil)
		return
	}

	result := h.appraisalService.Quick(req.toItem())

	utils.SuccessResponse(c, gin.H{
		"appraisal": result,
	})
}

// GET /appraisals
func (h *AppraisalHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.appraisalService.ListByUser(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /appraisals/:id
func (h *AppraisalHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	appraisalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid appraisal ID", nil)
		return
	}

	record, err := h.appraisalService.GetByID(userID, appraisalID)
	if err != nil {
		respondAppraisalError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appraisal": services.ResultFromRecord(record),
		"record":    record,
	})
}

// DELETE /appraisals/:id
func (h *AppraisalHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	appraisalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid appraisal ID", nil)
		return
	}

	if err := h.appraisalService.Delete(userID, appraisalID); err != nil {
		respondAppraisalError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAppraisalDeleted),
	})
}

// POST /appraisals/upload-images
func (h *AppraisalHandler) UploadImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "form"), err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "images"), nil)
		return
	}
	if len(files) > 5 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "images"), "maximum 5 images per appraisal")
		return
	}

	options := h.storageService.GetDefaultUploadOptions("item_photos")

	results := make([]*services.UploadResult, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
			return
		}

		if err := h.storageService.ValidateImage(file); err != nil {
			file.Close()
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), err.Error())
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
			return
		}
		results = append(results, result)
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"files":   results,
	})
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func respondAppraisalError(c *gin.Context, err error) {
	switch err.Error() {
	case "appraisal not found":
		utils.NotFoundResponse(c, i18n.KeyAppraisalNotFound)
	case "access denied":
		utils.ForbiddenResponse(c, "")
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
