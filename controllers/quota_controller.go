// file: controllers/quota_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/mappers"
	"hyperion/models"
	"hyperion/utils"
)

func pathID(c *gin.Context, name string) (uint32, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint32(raw), true
}

// ========== General quotas ==========

func GetGeneralQuota(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	var quota models.SchoolGeneralQuota
	err := database.DB.Where("school_id = ? AND edition_id = ?", schoolID, edition.ID).
		First(&quota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "No general quota for this school")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Success(c, "success", mappers.MapGeneralQuotaToResp(quota))
}

func SetGeneralQuota(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	if school := loadSchoolExtension(c, schoolID); school == nil {
		return
	}
	var req dto.GeneralQuotaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	quota := models.SchoolGeneralQuota{
		SchoolID:                 schoolID,
		EditionID:                edition.ID,
		AthleteQuota:             req.AthleteQuota,
		CameramanQuota:           req.CameramanQuota,
		PompomQuota:              req.PompomQuota,
		FanfareQuota:             req.FanfareQuota,
		VolunteerQuota:           req.VolunteerQuota,
		AthleteCameramanQuota:    req.AthleteCameramanQuota,
		AthletePompomQuota:       req.AthletePompomQuota,
		AthleteFanfareQuota:      req.AthleteFanfareQuota,
		NonAthleteCameramanQuota: req.NonAthleteCameramanQuota,
		NonAthletePompomQuota:    req.NonAthletePompomQuota,
		NonAthleteFanfareQuota:   req.NonAthleteFanfareQuota,
	}
	err := database.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&quota).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Created(c, "Quota saved", mappers.MapGeneralQuotaToResp(quota))
}

func DeleteGeneralQuota(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	res := database.DB.Where("school_id = ? AND edition_id = ?", schoolID, edition.ID).
		Delete(&models.SchoolGeneralQuota{})
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "No general quota for this school")
		return
	}
	utils.NoContent(c)
}

// ========== Sport quotas ==========

func GetSportQuotas(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	var quotas []models.SchoolSportQuota
	err := database.DB.Where("school_id = ? AND edition_id = ?", schoolID, edition.ID).
		Find(&quotas).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.SportQuotaResp, 0, len(quotas))
	for _, quota := range quotas {
		resp = append(resp, mappers.MapSportQuotaToResp(quota))
	}
	utils.Success(c, "success", resp)
}

func SetSportQuota(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	if school := loadSchoolExtension(c, schoolID); school == nil {
		return
	}
	var sport models.Sport
	if err := database.DB.First(&sport, sportID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Sport not found")
		return
	}
	var req dto.SportQuotaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	quota := models.SchoolSportQuota{
		SchoolID:         schoolID,
		SportID:          sportID,
		EditionID:        edition.ID,
		ParticipantQuota: req.ParticipantQuota,
		TeamQuota:        req.TeamQuota,
	}
	err := database.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&quota).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Created(c, "Quota saved", mappers.MapSportQuotaToResp(quota))
}

func DeleteSportQuota(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	res := database.DB.
		Where("school_id = ? AND sport_id = ? AND edition_id = ?", schoolID, sportID, edition.ID).
		Delete(&models.SchoolSportQuota{})
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "No sport quota for this school")
		return
	}
	utils.NoContent(c)
}

// ========== Product quotas ==========

func GetProductQuotas(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	var quotas []models.SchoolProductQuota
	err := database.DB.Where("school_id = ? AND edition_id = ?", schoolID, edition.ID).
		Find(&quotas).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.ProductQuotaResp, 0, len(quotas))
	for _, quota := range quotas {
		resp = append(resp, mappers.MapProductQuotaToResp(quota))
	}
	utils.Success(c, "success", resp)
}

func SetProductQuota(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	if school := loadSchoolExtension(c, schoolID); school == nil {
		return
	}
	var product models.CompetitionProduct
	err := database.DB.Where("id = ? AND edition_id = ?", productID, edition.ID).
		First(&product).Error
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Product not found")
		return
	}
	var req dto.ProductQuotaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	quota := models.SchoolProductQuota{
		SchoolID:  schoolID,
		ProductID: productID,
		EditionID: edition.ID,
		Quota:     req.Quota,
	}
	err = database.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&quota).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Created(c, "Quota saved", mappers.MapProductQuotaToResp(quota))
}

func DeleteProductQuota(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	schoolID, ok := pathID(c, "school_id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	res := database.DB.
		Where("school_id = ? AND product_id = ? AND edition_id = ?", schoolID, productID, edition.ID).
		Delete(&models.SchoolProductQuota{})
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "No product quota for this school")
		return
	}
	utils.NoContent(c)
}
