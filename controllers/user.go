package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"birthday-reminder/config"
	"birthday-reminder/models"
	"birthday-reminder/utils"
)

// CreateUserInput defines the expected JSON structure for creating a user
type CreateUserInput struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	BirthDate string `json:"birth_date" binding:"required"`
	Location  string `json:"location"`
	Message   string `json:"message"`
}

// UpdateUserInput defines the expected JSON structure for updating a user
type UpdateUserInput struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	BirthDate *string `json:"birth_date"`
	Location  *string `json:"location"`
	Message   *string `json:"message"`
}

// AddUser creates a new birthday-reminder user
func AddUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	if !utils.ValidDate(input.BirthDate) {
		utils.RespondWithError(c, http.StatusBadRequest, `"birth_date" must be a valid date`)
		return
	}

	if input.Location == "" {
		input.Location = serverZone()
	} else if !models.IsValidZone(input.Location) {
		utils.RespondWithError(c, http.StatusBadRequest, `"location" must be a valid timezone`)
		return
	}

	tx := config.DB.Begin()

	var existing models.User
	err := tx.Where("email = ? OR (first_name = ? AND last_name = ?)",
		input.Email, input.FirstName, input.LastName).
		First(&existing).Error
	if err == nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusBadRequest, "Email or first name and last name already exist")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		BirthDate: input.BirthDate,
		Location:  input.Location,
		Message:   input.Message,
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondSuccess(c, "Success add user")
}

// GetUsers retrieves all users
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondSuccessData(c, "Success get all user", users)
}

// UpdateUser applies a partial update to an existing user
func UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	if input.BirthDate != nil && !utils.ValidDate(*input.BirthDate) {
		utils.RespondWithError(c, http.StatusBadRequest, `"birth_date" must be a valid date`)
		return
	}
	if input.Location != nil && !models.IsValidZone(*input.Location) {
		utils.RespondWithError(c, http.StatusBadRequest, `"location" must be a valid timezone`)
		return
	}

	tx := config.DB.Begin()

	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "User doesn't exist")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.BirthDate != nil {
		user.BirthDate = *input.BirthDate
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Message != nil {
		user.Message = *input.Message
	}

	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondSuccess(c, "Success update user")
}

// DeleteUser removes a user by id
func DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	tx := config.DB.Begin()

	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "User doesn't exist")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondSuccess(c, "Success delete user")
}

// serverZone resolves the host's IANA zone name, falling back to UTC when
// the local zone has no catalog name (e.g. TZ unset).
func serverZone() string {
	name := time.Now().Location().String()
	if models.IsValidZone(name) {
		return name
	}
	return "UTC"
}
