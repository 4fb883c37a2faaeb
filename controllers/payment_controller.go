// file: controllers/payment_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/mappers"
	"hyperion/models"
	"hyperion/services"
	"hyperion/utils"
)

// PaymentProvider is the external checkout backend. Swapped for a stub in
// tests.
var PaymentProvider services.CheckoutProvider = services.NewHelloAssoProvider()

func GetUserPayments(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	var payments []models.CompetitionPayment
	err := database.DB.Where("user_id = ? AND edition_id = ?", userID, edition.ID).
		Order("created_at").Find(&payments).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.PaymentResp, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, mappers.MapPaymentToResp(p))
	}
	utils.Success(c, "success", resp)
}

// CreatePayment is the admin path for recording money received outside the
// provider, cash or bank transfer. The user must already be validated.
func CreatePayment(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
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
	if !user.Validated {
		utils.Error(c, http.StatusForbidden, "User must be validated before recording payments")
		return
	}
	var req dto.CreatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	payment, err := services.ApplyPayment(database.DB, userID, edition.ID, req.Total, nil)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Created(c, "Payment recorded", mappers.MapPaymentToResp(*payment))
}

// DeletePayment removes a payment and rederives every purchase validation
// from the remaining money.
func DeletePayment(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "payment_id")
	if !ok {
		return
	}
	if err := services.DeletePayment(database.DB, paymentID, userID, edition.ID); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

// Pay opens a provider checkout session for the caller's unpaid remainder
// and returns the payment URL.
func Pay(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	resp, err := services.CreateCheckout(database.DB, PaymentProvider,
		user.UserID, edition.ID, edition.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Created(c, "Checkout created", resp)
}
