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

type AgentInfoRequest struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required"`
}

// SetAgentInfoHandler upserts the single cash-agent contact record.
func SetAgentInfoHandler(w http.ResponseWriter, r *http.Request) {
	var req AgentInfoRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var info models.AgentInfo
		if err := tx.First(&info).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&models.AgentInfo{Name: req.Name, Number: req.Number}).Error
			}
			return err
		}
		info.Name = req.Name
		info.Number = req.Number
		return tx.Save(&info).Error
	})
	if err != nil {
		log.Printf("[agent-info] upsert: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Agent info updated"})
}

// GetAgentInfoHandler returns the cash-agent contact record.
func GetAgentInfoHandler(w http.ResponseWriter, r *http.Request) {
	var info models.AgentInfo
	if err := database.DB.First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Agent info not set"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{"success": true, "agent": info})
}
