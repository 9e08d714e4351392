package controllers

import (
	"github.com/gin-gonic/gin"

	"birthday-reminder/models"
	"birthday-reminder/utils"
)

// GetZones returns the catalog of accepted timezone identifiers
func GetZones(c *gin.Context) {
	utils.RespondSuccessData(c, "Success get all zone", models.Zones)
}
