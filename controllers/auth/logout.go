package auth

import (
	"net/http"
	"strings"

	"github.com/bkbadhon/fulus-backend/utils"
)

// LogoutHandler revokes the presented access token. Without a Redis revocation
// store this is a no-op and the token simply ages out.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	claims, err := utils.ValidateAccessToken(tokenStr)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	utils.RevokeToken(claims)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
