package controllers

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
)

type NoticeRequest struct {
	Content string `json:"content" validate:"required"`
}

// SetNoticeHandler upserts the single broadcast notice shown to all clients.
func SetNoticeHandler(w http.ResponseWriter, r *http.Request) {
	var req NoticeRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var notice models.Notice
		if err := tx.First(&notice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&models.Notice{Content: req.Content}).Error
			}
			return err
		}
		notice.Content = req.Content
		return tx.Save(&notice).Error
	})
	if err != nil {
		log.Printf("[notice] upsert: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Notice updated"})
}

// GetNoticeHandler returns the broadcast notice.
func GetNoticeHandler(w http.ResponseWriter, r *http.Request) {
	var notice models.Notice
	if err := database.DB.First(&notice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "No notice set"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{"success": true, "notice": notice})
}
