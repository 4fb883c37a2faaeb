// file: controllers/webhook_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/services"
	"hyperion/utils"
)

// PaymentWebhook receives provider notifications. Unauthenticated; the
// checkout secret inside the metadata is what ties a notification to us.
func PaymentWebhook(c *gin.Context) {
	var notification dto.PaymentNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid notification body")
		return
	}
	if err := services.HandleNotification(database.DB, database.RDB, &notification); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}
