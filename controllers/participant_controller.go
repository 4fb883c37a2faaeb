// file: controllers/participant_controller.go
package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/mappers"
	"hyperion/middlewares"
	"hyperion/models"
	"hyperion/services"
	"hyperion/utils"
)

// CertificateStore holds the medical certificates. Swapped for a temp-dir
// store in tests.
var CertificateStore services.FileStore = services.NewDiskFileStore()

func GetParticipants(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	query := database.DB.Where("edition_id = ?", edition.ID)
	if sport := c.Query("sport_id"); sport != "" {
		query = query.Where("sport_id = ?", sport)
	}
	if school := c.Query("school_id"); school != "" {
		query = query.Where("school_id = ?", school)
	}
	var participants []models.CompetitionParticipant
	if err := query.Find(&participants).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.ParticipantResp, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, mappers.MapParticipantToResp(p))
	}
	utils.Success(c, "success", resp)
}

func GetMyParticipations(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	var participants []models.CompetitionParticipant
	err := database.DB.Where("user_id = ? AND edition_id = ?", user.UserID, edition.ID).
		Find(&participants).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.ParticipantResp, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, mappers.MapParticipantToResp(p))
	}
	utils.Success(c, "success", resp)
}

func JoinSport(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	if !edition.InscriptionEnabled {
		utils.Error(c, http.StatusForbidden, "Inscriptions are closed")
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	if !user.IsAthlete {
		utils.Error(c, http.StatusForbidden, "Only athletes can join a sport")
		return
	}
	school := loadSchoolExtension(c, user.SchoolID)
	if school == nil {
		return
	}
	var sport models.Sport
	if err := database.DB.First(&sport, sportID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Sport not found")
		return
	}
	if !sport.Active {
		utils.Error(c, http.StatusForbidden, "Sport is closed")
		return
	}
	var req dto.JoinSportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	participant, err := services.JoinSport(database.DB, user, school, &sport, services.JoinInfo{
		TeamID:     req.TeamID,
		Substitute: req.Substitute,
		License:    req.License,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Created(c, "Joined sport", mappers.MapParticipantToResp(*participant))
}

func WithdrawFromSport(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	if err := services.WithdrawFromSport(database.DB, user.UserID, sportID, edition.ID); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

func DeleteParticipant(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	claims := middlewares.GetClaims(c)
	if claims == nil {
		utils.Error(c, http.StatusUnauthorized, "Missing auth context")
		return
	}
	err := services.DeleteParticipant(database.DB, userID, sportID, edition.ID,
		claims.SchoolID, middlewares.IsAdmin(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

// SetLicenseValidity flags a participant's license as checked by the staff.
func SetLicenseValidity(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	var req struct {
		Valid *bool `json:"valid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	res := database.DB.Model(&models.CompetitionParticipant{}).
		Where("user_id = ? AND sport_id = ? AND edition_id = ?", userID, sportID, edition.ID).
		Update("is_license_valid", *req.Valid)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Participant not found")
		return
	}
	// Revoking a checked license voids the user's validation.
	if !*req.Valid {
		database.DB.Model(&models.CompetitionUser{}).
			Where("user_id = ? AND edition_id = ? AND validated = ?", userID, edition.ID, true).
			Update("validated", false)
	}
	utils.NoContent(c)
}

func loadParticipant(c *gin.Context, userID, sportID, editionID uint32) *models.CompetitionParticipant {
	var participant models.CompetitionParticipant
	err := database.DB.Where("user_id = ? AND sport_id = ? AND edition_id = ?",
		userID, sportID, editionID).First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Participant not found")
			return nil
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return nil
	}
	return &participant
}

// UploadCertificate stores the caller's medical certificate for one sport.
func UploadCertificate(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	participant := loadParticipant(c, user.UserID, sportID, edition.ID)
	if participant == nil {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing file")
		return
	}
	src, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Unreadable file")
		return
	}
	defer src.Close()

	fileID := uuid.New().String()
	if err := CertificateStore.Save(fileID, src); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not store file")
		return
	}
	if participant.CertificateFileID != nil {
		CertificateStore.Delete(*participant.CertificateFileID)
	}
	err = database.DB.Model(participant).
		Updates(map[string]interface{}{
			"certificate_file_id": fileID,
			"is_license_valid":    false,
		}).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Created(c, "Certificate uploaded", gin.H{"file_id": fileID})
}

// DownloadCertificate streams a participant's certificate. Restricted to
// admins and schools BDS at the route level.
func DownloadCertificate(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	sportID, ok := pathID(c, "sport_id")
	if !ok {
		return
	}
	participant := loadParticipant(c, userID, sportID, edition.ID)
	if participant == nil {
		return
	}
	if participant.CertificateFileID == nil {
		utils.Error(c, http.StatusNotFound, "No certificate uploaded")
		return
	}
	reader, err := CertificateStore.Open(*participant.CertificateFileID)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Certificate file missing")
		return
	}
	defer reader.Close()
	c.Header("Content-Disposition", "attachment; filename=certificate")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}
