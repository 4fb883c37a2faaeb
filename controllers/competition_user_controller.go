// file: controllers/competition_user_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/mappers"
	"hyperion/middlewares"
	"hyperion/models"
	"hyperion/services"
	"hyperion/utils"
)

// checkRoleRules enforces the registration role constraints: at least one
// role, at most one of pompom/fanfare/cameraman, volunteer restricted to
// Centrale Lyon, and a sport category whenever the user is an athlete or
// pompom.
func checkRoleRules(u *models.CompetitionUser) string {
	if !u.IsAthlete && !u.IsCameraman && !u.IsPompom && !u.IsFanfare && !u.IsVolunteer {
		return "You must have at least one role"
	}
	exclusive := 0
	for _, flag := range []bool{u.IsPompom, u.IsFanfare, u.IsCameraman} {
		if flag {
			exclusive++
		}
	}
	if exclusive > 1 {
		return "You can only be one of pompom, fanfare or cameraman"
	}
	if u.IsVolunteer && u.SchoolID != models.CentraleLyonSchoolID {
		return "Only Centrale Lyon students can be volunteers"
	}
	if (u.IsAthlete || u.IsPompom) && u.SportCategory == nil {
		return "Athletes and pompoms must declare a sport category"
	}
	return ""
}

func GetMyCompetitionUser(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	utils.Success(c, "success", mappers.MapCompetitionUserToResp(*user))
}

func GetCompetitionUsers(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	query := database.DB.Where("edition_id = ?", edition.ID)
	if school := c.Query("school_id"); school != "" {
		query = query.Where("school_id = ?", school)
	}
	var users []models.CompetitionUser
	if err := query.Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.CompetitionUserResp, 0, len(users))
	for _, u := range users {
		resp = append(resp, mappers.MapCompetitionUserToResp(u))
	}
	utils.Success(c, "success", resp)
}

func RegisterCompetitionUser(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	if !edition.InscriptionEnabled {
		utils.Error(c, http.StatusForbidden, "Inscriptions are closed")
		return
	}
	claims := middlewares.GetClaims(c)
	if claims == nil {
		utils.Error(c, http.StatusUnauthorized, "Missing auth context")
		return
	}
	school := loadSchoolExtension(c, claims.SchoolID)
	if school == nil {
		return
	}
	if !school.Active || !school.InscriptionEnabled {
		utils.Error(c, http.StatusForbidden, "Inscriptions are closed for your school")
		return
	}
	var req dto.CreateCompetitionUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	user := models.CompetitionUser{
		UserID:      claims.UserID,
		EditionID:   edition.ID,
		SchoolID:    claims.SchoolID,
		IsAthlete:   req.IsAthlete,
		IsCameraman: req.IsCameraman,
		IsPompom:    req.IsPompom,
		IsFanfare:   req.IsFanfare,
		IsVolunteer: req.IsVolunteer,
	}
	if req.SportCategory != nil {
		category := models.SportCategory(*req.SportCategory)
		if category != models.CategoryMasculine && category != models.CategoryFeminine {
			utils.Error(c, http.StatusBadRequest, "Invalid sport category")
			return
		}
		user.SportCategory = &category
	}
	if msg := checkRoleRules(&user); msg != "" {
		utils.Error(c, http.StatusBadRequest, msg)
		return
	}
	if err := database.DB.Create(&user).Error; err != nil {
		utils.Error(c, http.StatusConflict, "You are already registered for this edition")
		return
	}
	utils.Created(c, "Registered", mappers.MapCompetitionUserToResp(user))
}

func EditCompetitionUser(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	claims := middlewares.GetClaims(c)
	if claims == nil {
		utils.Error(c, http.StatusUnauthorized, "Missing auth context")
		return
	}
	if claims.UserID != userID && !middlewares.IsAdmin(c) {
		utils.Error(c, http.StatusForbidden, "You can only edit your own registration")
		return
	}
	var user models.CompetitionUser
	err := database.DB.Where("user_id = ? AND edition_id = ?", userID, edition.ID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "User is not registered for this edition")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	var req dto.EditCompetitionUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	if req.IsAthlete != nil {
		user.IsAthlete = *req.IsAthlete
	}
	if req.IsCameraman != nil {
		user.IsCameraman = *req.IsCameraman
	}
	if req.IsPompom != nil {
		user.IsPompom = *req.IsPompom
	}
	if req.IsFanfare != nil {
		user.IsFanfare = *req.IsFanfare
	}
	if req.IsVolunteer != nil {
		user.IsVolunteer = *req.IsVolunteer
	}
	if req.SportCategory != nil {
		category := models.SportCategory(*req.SportCategory)
		if category != models.CategoryMasculine && category != models.CategoryFeminine {
			utils.Error(c, http.StatusBadRequest, "Invalid sport category")
			return
		}
		user.SportCategory = &category
	}
	if msg := checkRoleRules(&user); msg != "" {
		utils.Error(c, http.StatusBadRequest, msg)
		return
	}
	// Any change to the roles voids an earlier validation.
	user.Validated = false
	err = database.DB.Model(&models.CompetitionUser{}).
		Where("user_id = ? AND edition_id = ?", userID, edition.ID).
		Updates(map[string]interface{}{
			"is_athlete":     user.IsAthlete,
			"is_cameraman":   user.IsCameraman,
			"is_pompom":      user.IsPompom,
			"is_fanfare":     user.IsFanfare,
			"is_volunteer":   user.IsVolunteer,
			"sport_category": user.SportCategory,
			"validated":      false,
		}).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Success(c, "Registration updated", mappers.MapCompetitionUserToResp(user))
}

// ValidateCompetitionUser runs the full consistency check and, when it
// passes, marks the user validated.
func ValidateCompetitionUser(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if err := services.ValidateCompetitionUser(database.DB, userID, edition.ID); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

// InvalidateCompetitionUser clears the validated flag. Refused while
// payments exist, since those were accepted against the validated state.
func InvalidateCompetitionUser(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	total, err := services.PaymentsTotal(database.DB, userID, edition.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if total > 0 {
		utils.Error(c, http.StatusConflict, "User has recorded payments")
		return
	}
	res := database.DB.Model(&models.CompetitionUser{}).
		Where("user_id = ? AND edition_id = ?", userID, edition.ID).
		Update("validated", false)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "User is not registered for this edition")
		return
	}
	utils.NoContent(c)
}
