package users

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
)

type CreateUserRequest struct {
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Password      string  `json:"password" validate:"required,min=6"`
	AvatarURL     string  `json:"avatarUrl" validate:"required"`
	UserID        int64   `json:"userId" validate:"required,gt=0"`
	SponsorID     *int64  `json:"sponsorId"`
	TransactionID string  `json:"transactionId"`
	Role          string  `json:"role"`
	Balance       float64 `json:"balance"`
	ChargeAmount  float64 `json:"chargeAmount"`
}

// CreateUserHandler registers a user under an optional sponsor and freezes the
// ancestry snapshot for older clients. Sponsor links are assigned once here
// and never mutated, so the forest stays acyclic.
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB

	var existing models.User
	if err := db.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "User already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[users] DB error checking userId %d: %v", req.UserID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if req.SponsorID != nil {
		var sponsor models.User
		if err := db.Where("user_id = ?", *req.SponsorID).First(&sponsor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Sponsor not found"})
				return
			}
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	newUser := models.User{
		UserID:       req.UserID,
		Name:         req.Name,
		Phone:        req.Phone,
		Password:     string(hashed),
		AvatarURL:    req.AvatarURL,
		Role:         role,
		SponsorID:    req.SponsorID,
		Status:       "inactive",
		Balance:      req.Balance,
		ChargeAmount: req.ChargeAmount,
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		if req.SponsorID != nil {
			return tx.Create(snapshotGenerations(tx, req.UserID, *req.SponsorID)).Error
		}
		return nil
	}); err != nil {
		log.Printf("[users] create userId %d: %v", req.UserID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteRaw(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    newUser,
	})
}

// snapshotGenerations freezes the new user's ancestry by shifting the
// sponsor's own snapshot one level down. Write-only compatibility data: reads
// always resolve the chain live.
func snapshotGenerations(tx *gorm.DB, userID, sponsorID int64) *models.Generation {
	gen := &models.Generation{UserID: userID, SponsorID: sponsorID}
	var sponsorGen models.Generation
	if err := tx.Where("user_id = ?", sponsorID).First(&sponsorGen).Error; err == nil {
		gen.G2 = int64Ptr(sponsorGen.SponsorID)
		gen.G3 = sponsorGen.G2
		gen.G4 = sponsorGen.G3
		gen.G5 = sponsorGen.G4
		gen.G6 = sponsorGen.G5
		gen.G7 = sponsorGen.G6
		gen.G8 = sponsorGen.G7
		gen.G9 = sponsorGen.G8
		gen.G10 = sponsorGen.G9
	}
	return gen
}

func int64Ptr(v int64) *int64 {
	return &v
}

// ListUsersHandler returns every user; password hashes never serialize.
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, users)
}

// GetUserHandler returns a single user by userId.
func GetUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	var user models.User
	if err := database.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

// DeleteUserHandler removes a user record by userId.
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	res := database.DB.Where("user_id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User deleted successfully"})
}

type SetPinRequest struct {
	UserID int64  `json:"userId" validate:"required"`
	Pin    string `json:"pin" validate:"required,min=4"`
}

// SetPinHandler stores the transaction PIN as a bcrypt hash. The PIN gates
// cash withdrawals.
func SetPinHandler(w http.ResponseWriter, r *http.Request) {
	var req SetPinRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	res := database.DB.Model(&models.User{}).Where("user_id = ?", req.UserID).
		Update("transaction_pin", string(hashed))
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Transaction PIN updated"})
}

// pathUserID parses the {userId} path variable, writing the 400 itself.
func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["userId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid userId"})
		return 0, false
	}
	return id, true
}
