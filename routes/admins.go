package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bkbadhon/fulus-backend/controllers"
	"github.com/bkbadhon/fulus-backend/controllers/admins"
	"github.com/bkbadhon/fulus-backend/controllers/users"
	"github.com/bkbadhon/fulus-backend/middleware"
)

// SetAdminRoutes registers the admin surface. Everything here requires a
// valid token with the admin role.
func SetAdminRoutes(api *mux.Router) {
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware, middleware.AdminOnly)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(users.ListUsersHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{userId:[0-9]+}", http.HandlerFunc(users.DeleteUserHandler)).Methods(http.MethodDelete)

	// Settlement oversight
	adminRouter.Handle("/withdraws", http.HandlerFunc(admins.ListWithdrawsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/withdraws/reject/{id:[0-9]+}", http.HandlerFunc(admins.RejectWithdrawHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/deposits", http.HandlerFunc(admins.ListDepositsHandler)).Methods(http.MethodGet)

	// Network reports
	adminRouter.Handle("/referral-report", http.HandlerFunc(admins.ReferralReportHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/users-with-rank", http.HandlerFunc(admins.UsersWithRankHandler)).Methods(http.MethodGet)

	// Singleton info management
	adminRouter.Handle("/agent-info", http.HandlerFunc(controllers.SetAgentInfoHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/notice", http.HandlerFunc(controllers.SetNoticeHandler)).Methods(http.MethodPut)
}
