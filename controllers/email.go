package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"birthday-reminder/services"
	"birthday-reminder/utils"
)

// SendBulkEmail triggers a transactional delivery pass over all unsent users
func SendBulkEmail(delivery *services.DeliveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := delivery.SendBulk(c.Request.Context()); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
			return
		}

		utils.RespondSuccess(c, "Success send all email")
	}
}
