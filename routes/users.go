package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bkbadhon/fulus-backend/controllers"
	"github.com/bkbadhon/fulus-backend/controllers/admins"
	"github.com/bkbadhon/fulus-backend/controllers/auth"
	"github.com/bkbadhon/fulus-backend/controllers/users"
	"github.com/bkbadhon/fulus-backend/middleware"
)

// UsersRoutes registers every user-facing route on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Rate limiter for login/signup: 30 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(30, 5*time.Minute)

	// Signup & Login
	api.Handle("/users", loginLimiter.Middleware(http.HandlerFunc(users.CreateUserHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/logout", http.HandlerFunc(auth.LogoutHandler)).Methods(http.MethodPost)

	// Public singleton info
	api.Handle("/agent-info", http.HandlerFunc(controllers.GetAgentInfoHandler)).Methods(http.MethodGet)
	api.Handle("/notice", http.HandlerFunc(controllers.GetNoticeHandler)).Methods(http.MethodGet)

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}

	// Profile
	api.Handle("/users", authed(users.ListUsersHandler)).Methods(http.MethodGet)
	api.Handle("/users/{userId:[0-9]+}", authed(users.GetUserHandler)).Methods(http.MethodGet)
	api.Handle("/users/set-pin", authed(users.SetPinHandler)).Methods(http.MethodPost)

	// Activation: self-funded and sponsor-funded variants share one handler,
	// the payer defaults to the account being activated.
	api.Handle("/activate-account", authed(users.ActivateHandler)).Methods(http.MethodPost)
	api.Handle("/users/activate", authed(users.ActivateHandler)).Methods(http.MethodPost)

	// Referral network
	api.Handle("/users/{userId:[0-9]+}/referrals", authed(users.ReferralsHandler)).Methods(http.MethodGet)
	api.Handle("/generations/{userId:[0-9]+}", authed(users.GenerationsHandler)).Methods(http.MethodGet)
	api.Handle("/users/{userId:[0-9]+}/gen1-ref-totals", authed(users.Gen1RefTotalsHandler)).Methods(http.MethodGet)
	api.Handle("/users/{userId:[0-9]+}/gen1-ref-count", authed(users.Gen1RefCountHandler)).Methods(http.MethodGet)
	api.Handle("/users/{userId:[0-9]+}/rank", authed(admins.UserRankHandler)).Methods(http.MethodGet)

	// Bonus engine
	api.Handle("/bonus/{userId:[0-9]+}", authed(users.BonusPreviewHandler)).Methods(http.MethodGet)
	api.Handle("/bonus/by-generation/{userId:[0-9]+}", authed(users.BonusByGenerationHandler)).Methods(http.MethodGet)
	api.Handle("/bonus/collect", authed(users.CollectBonusHandler)).Methods(http.MethodPost)
	api.Handle("/bonus/daily-income/{userId:[0-9]+}", authed(users.DailyIncomeDistributeHandler)).Methods(http.MethodPost)
	api.Handle("/bonus/savings/{userId:[0-9]+}", authed(users.SavingsDistributeHandler)).Methods(http.MethodPost)

	// Daily collections
	api.Handle("/daily-savings/collect", authed(users.CollectDailySavingHandler)).Methods(http.MethodPost)
	api.Handle("/daily-savings/{userId:[0-9]+}", authed(users.ListDailySavingsHandler)).Methods(http.MethodGet)
	api.Handle("/daily-income/collect", authed(users.CollectDailyIncomeHandler)).Methods(http.MethodPost)
	api.Handle("/generation/collect", authed(users.CollectGenerationHandler)).Methods(http.MethodPost)
	api.Handle("/savings/withdraw", authed(users.WithdrawSavingsHandler)).Methods(http.MethodPost)

	// Rank rewards
	api.Handle("/users/{userId:[0-9]+}/rank-rewards", authed(users.RankRewardsHandler)).Methods(http.MethodGet)
	api.Handle("/users/collect-reward", authed(users.CollectRankRewardHandler)).Methods(http.MethodPost)

	// Withdraw lifecycle
	api.Handle("/withdraw", authed(users.WithdrawHandler)).Methods(http.MethodPost)
	api.Handle("/withdraw", authed(users.MyWithdrawsHandler)).Methods(http.MethodGet)
	api.Handle("/withdraw/{userId:[0-9]+}", authed(users.ListWithdrawsHandler)).Methods(http.MethodGet)
	api.Handle("/withdraw/accept/{id:[0-9]+}", authed(admins.AcceptWithdrawHandler)).Methods(http.MethodPut)
	api.Handle("/withdraw/success/{id:[0-9]+}", authed(admins.CompleteWithdrawHandler)).Methods(http.MethodPut)
	api.Handle("/withdraw-sar", authed(users.WithdrawSarHandler)).Methods(http.MethodPost)
	api.Handle("/withdraw-gold", authed(users.WithdrawGoldHandler)).Methods(http.MethodPost)

	// Deposit lifecycle
	api.Handle("/deposit", authed(users.DepositHandler)).Methods(http.MethodPost)
	api.Handle("/deposit/{userId:[0-9]+}", authed(users.ListDepositsHandler)).Methods(http.MethodGet)
	api.Handle("/deposit/update/{id:[0-9]+}", authed(admins.AcceptDepositHandler)).Methods(http.MethodPut)
	api.Handle("/deposit/success/{id:[0-9]+}", authed(admins.CompleteDepositHandler)).Methods(http.MethodPut)

	// Ledger movements
	api.Handle("/transfer", authed(users.TransferHandler)).Methods(http.MethodPost)
	api.Handle("/send-money", authed(users.SendMoneyHandler)).Methods(http.MethodPost)

	// History
	api.Handle("/transactions/{userId:[0-9]+}", authed(controllers.TransactionsHandler)).Methods(http.MethodGet)
}
