package router

import (
	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/network/handlers"
	"github.com/denmor86/cardcredit/internal/network/middleware"
	"github.com/denmor86/cardcredit/internal/services"
	"github.com/denmor86/cardcredit/internal/storage"
	"github.com/go-chi/chi/v5"

	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Config     config.Config
	Identity   services.IdentityService
	Verifier   services.VerifierService
	Decision   services.DecisionService
	Settlement services.SettlementService
	Ledger     services.LedgerService
	Params     *services.Params
}

func NewRouter(config config.Config, storage storage.Storage) *Router {
	params := services.NewParams(config.Risk)
	ledger := services.NewAuthLedger(config.Hold, storage.Decisions)
	positions := services.NewPositionResolver(config.Ledger)
	oracle := services.NewOracleService(config.Oracle)
	risk := services.NewRisk(config.Oracle)

	return &Router{
		Config:     config,
		Identity:   services.NewIdentity(config, storage.Users),
		Verifier:   services.NewVerifier(config.Processor),
		Decision:   services.NewDecision(config, positions, oracle, risk, ledger, params),
		Settlement: services.NewSettlement(storage.Settlements, ledger),
		Ledger:     ledger,
		Params:     params,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Post("/webhook", handlers.WebhookHandler(router.Config.Processor, router.Verifier, router.Decision, router.Settlement))
		r.Route("/admin", func(r chi.Router) {
			r.Post("/register", handlers.RegisterUserHandler(router.Identity))
			r.Post("/login", handlers.AuthenticateUserHandle(router.Identity))
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(ja))
				r.Use(jwtauth.Authenticator(ja))
				r.Get("/credit/{userID}", handlers.CreditSummaryHandler(router.Decision))
				r.Post("/params", handlers.UpdateParamsHandler(router.Params))
				r.Post("/pause", handlers.PauseHandler(router.Params))
			})
		})
	})
	return r
}
