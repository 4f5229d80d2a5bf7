// Package echo wires the application services to the HTTP surface.
package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/cache"
	"github.com/halcyonworks/mission-control/config"
	"github.com/halcyonworks/mission-control/internal/authflow"
	"github.com/halcyonworks/mission-control/internal/identity"
	"github.com/halcyonworks/mission-control/internal/ratelimit"
	"github.com/halcyonworks/mission-control/log"
	"github.com/halcyonworks/mission-control/services"
)

// API holds the handler dependencies.
type API struct {
	companies *services.CompanyService
	tasks     *services.TaskService
	leads     *services.LeadService
	audits    *services.AuditService
	proposals *services.ProposalService
	portal    *services.PortalService
	profiles  *services.ProfileService

	idp      *identity.Client
	sessions cache.SessionCache
	limiter  *ratelimit.Store
	auth     *authflow.Handler

	cfg    *config.ServerConfig
	logger log.Logger
}

// NewAPI initializes the API.
func NewAPI(
	companies *services.CompanyService,
	tasks *services.TaskService,
	leads *services.LeadService,
	audits *services.AuditService,
	proposals *services.ProposalService,
	portal *services.PortalService,
	profiles *services.ProfileService,
	idp *identity.Client,
	sessions cache.SessionCache,
	limiter *ratelimit.Store,
	cfg *config.ServerConfig,
	logger log.Logger,
) *API {
	return &API{
		companies: companies,
		tasks:     tasks,
		leads:     leads,
		audits:    audits,
		proposals: proposals,
		portal:    portal,
		profiles:  profiles,
		idp:       idp,
		sessions:  sessions,
		limiter:   limiter,
		auth:      authflow.NewHandler(idp, profiles, logger, cfg.AdminEmail, cfg.IsDevelopment()),
		cfg:       cfg,
		logger:    logger,
	}
}

const (
	minuteWindow = time.Minute
	hourWindow   = time.Hour
)

// RegisterRoutes registers every route on the echo instance.
// Expensive generation routes get the tightest limits; the public
// capture forms allow a short burst per client IP.
func (a *API) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", a.Health)

	// Public auth surface.
	e.GET("/login", a.Login)
	e.GET("/auth/callback", a.auth.Callback,
		a.limit(ratelimit.ScopeAuthCallback, 10, minuteWindow))

	// Public capture forms.
	e.POST("/api/leads", a.CaptureLead,
		a.limit(ratelimit.ScopeLeadCapture, 5, minuteWindow))
	e.POST("/api/newsletter", a.SubscribeNewsletter,
		a.limit(ratelimit.ScopeNewsletterSubscribe, 5, minuteWindow))

	// Client portal.
	e.POST("/portal/:token", a.PortalAccess,
		a.limit(ratelimit.ScopePortalAccess, 10, minuteWindow))
	e.GET("/portal/:token/overview", a.PortalOverview,
		a.limit(ratelimit.ScopePortalAccess, 10, minuteWindow))

	// Operator dashboard. Rate limits run before the session
	// middleware; the limiter never sees provider traffic.
	g := e.Group("/api")

	g.GET("/companies", a.ListCompanies, a.RequireSession)
	g.POST("/companies", a.CreateCompany,
		a.limit(ratelimit.ScopeCreateCompany, 20, minuteWindow), a.RequireSession)
	g.GET("/companies/:id", a.GetCompany, a.RequireSession)
	g.PATCH("/companies/:id", a.UpdateCompany,
		a.limit(ratelimit.ScopeUpdateCompany, 30, minuteWindow), a.RequireSession)
	g.DELETE("/companies/:id", a.DeleteCompany, a.RequireSession)

	g.GET("/tasks", a.ListTasks, a.RequireSession)
	g.POST("/tasks", a.CreateTask,
		a.limit(ratelimit.ScopeTaskMutate, 30, minuteWindow), a.RequireSession)
	g.PATCH("/tasks/:id", a.UpdateTask,
		a.limit(ratelimit.ScopeTaskMutate, 30, minuteWindow), a.RequireSession)
	g.DELETE("/tasks/:id", a.DeleteTask, a.RequireSession)

	g.GET("/companies/:id/audits", a.ListAudits, a.RequireSession)
	g.POST("/companies/:id/audits", a.GenerateAudit,
		a.limit(ratelimit.ScopeAuditGenerate, 5, hourWindow), a.RequireSession)

	g.GET("/companies/:id/proposals", a.ListProposals, a.RequireSession)
	g.POST("/companies/:id/proposals", a.GenerateProposal,
		a.limit(ratelimit.ScopeProposalGenerate, 5, hourWindow), a.RequireSession)
	g.PATCH("/proposals/:id/status", a.UpdateProposalStatus, a.RequireSession)

	g.GET("/companies/:id/portal-links", a.ListPortalLinks, a.RequireSession)
	g.POST("/companies/:id/portal-links", a.IssuePortalLink, a.RequireSession)
	g.DELETE("/portal-links/:id", a.RevokePortalLink, a.RequireSession)

	g.POST("/scrape", a.ScrapePreview,
		a.limit(ratelimit.ScopeWebsiteScrape, 10, minuteWindow), a.RequireSession)

	g.GET("/leads", a.ListLeads, a.RequireSession)
	g.GET("/profile", a.GetProfile, a.RequireSession)
}

func (a *API) limit(scope string, n int, window time.Duration) echo.MiddlewareFunc {
	return ratelimit.Middleware(a.limiter, a.logger, scope, n, window)
}

// Health is the liveness probe.
func (a *API) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Login is a JSON diagnostic for the SPA login page: it reports
// whether a provider session cookie is present and relays any error
// the callback redirected here with.
func (a *API) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"hasSession": a.idp.HasSessionCookie(c.Request()),
		"error":      c.QueryParam("error"),
		"requestId":  c.QueryParam("request_id"),
	})
}
