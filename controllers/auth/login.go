package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
)

type LoginRequest struct {
	UserID   int64  `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler authenticates by userId + password. Passwords are stored as
// bcrypt hashes; the compare is constant time.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var user models.User
	if err := database.DB.Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid credentials"})
			return
		}
		log.Printf("[login] DB error fetching user %d: %v", req.UserID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := utils.GenerateAccessToken(user.UserID, user.Role, 24*time.Hour)
	if err != nil {
		log.Printf("[login] token error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Login successful",
		"access_token": token,
		"user": map[string]interface{}{
			"id":        user.ID,
			"name":      user.Name,
			"userId":    user.UserID,
			"role":      user.Role,
			"avatarUrl": user.AvatarURL,
			"balance":   user.Balance,
			"status":    user.Status,
		},
	})
}
