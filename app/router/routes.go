// Package router provides HTTP routing, middleware configuration, and server
// setup for the console API.
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/app/handlers"
	"github.com/voxlane/console/app/middleware"
	"github.com/voxlane/console/config"
	"github.com/voxlane/console/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth         handlers.AuthHandlerInterface
	Campaign     handlers.CampaignHandlerInterface
	Wizard       handlers.WizardHandlerInterface
	Call         handlers.CallHandlerInterface
	Organization handlers.OrganizationHandlerInterface
	User         handlers.UserHandlerInterface
	Role         handlers.RoleHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      *config.ProductionConfig
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.ProductionConfig, h Handlers, auth *middleware.AuthMiddleware) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Voxlane Console API",
		ServerHeader: "voxlane-console",
		ErrorHandler: errorHandler,
		BodyLimit:    16 * 1024 * 1024, // contact uploads
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:      app,
		cfg:      cfg,
		handlers: h,
		auth:     auth,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.setupMiddleware()

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting, no auth)
	api.Get("/health", r.healthCheck)

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Security.RateLimitRequests,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Session endpoints; login gets a stricter limiter of its own.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
	}))
	auth.Post("/login", r.handlers.Auth.Login)
	auth.Get("/session", r.auth.RequireSession(), r.handlers.Auth.CurrentSession)
	auth.Post("/logout", r.auth.RequireSession(), r.handlers.Auth.Logout)

	// Everything below requires a live session.
	protected := api.Group("", r.auth.RequireSession())

	campaigns := protected.Group("/campaigns")
	campaigns.Get("", r.handlers.Campaign.ListCampaigns)
	campaigns.Get("/:id", r.handlers.Campaign.GetCampaign)
	campaigns.Delete("/:id", r.handlers.Campaign.DeleteCampaign)
	campaigns.Post("/:id/contacts", r.handlers.Campaign.UploadContacts)
	campaigns.Get("/:id/contacts/template", r.handlers.Campaign.ContactTemplate)

	wizard := protected.Group("/wizard")
	wizard.Post("", r.handlers.Wizard.StartWizard)
	wizard.Get("/:id", r.handlers.Wizard.GetDraft)
	wizard.Patch("/:id", r.handlers.Wizard.UpdateStep)
	wizard.Delete("/:id", r.handlers.Wizard.DiscardDraft)
	wizard.Post("/:id/advance", r.handlers.Wizard.Advance)
	wizard.Post("/:id/back", r.handlers.Wizard.Back)
	wizard.Post("/:id/submit", r.handlers.Wizard.Submit)

	protected.Get("/voices", r.handlers.Wizard.ListVoices)

	calls := protected.Group("/calls")
	calls.Post("/list", r.handlers.Call.ListCalls)
	calls.Post("/initiate", r.handlers.Call.InitiateCall)
	calls.Post("/export", r.handlers.Call.ExportCSV)
	calls.Post("/report", r.handlers.Call.DetailedReport)
	calls.Get("/:sid/artifacts", r.handlers.Call.GetArtifacts)
	calls.Post("/:sid/rating", r.handlers.Call.RateCall)
	calls.Get("/:campaignId/:sid/recording", r.handlers.Call.GetRecording)

	orgs := protected.Group("/organizations")
	orgs.Get("", r.handlers.Organization.ListOrganizations)
	orgs.Post("", r.handlers.Organization.CreateOrganization)
	orgs.Get("/:id", r.handlers.Organization.GetOrganization)
	orgs.Put("/:id", r.handlers.Organization.UpdateOrganization)
	orgs.Delete("/:id", r.handlers.Organization.DeleteOrganization)

	users := protected.Group("/users")
	users.Get("", r.handlers.User.ListUsers)
	users.Post("", r.handlers.User.CreateUser)
	users.Get("/:id", r.handlers.User.GetUser)
	users.Put("/:id", r.handlers.User.UpdateUser)
	users.Delete("/:id", r.handlers.User.DeleteUser)

	roles := protected.Group("/roles")
	roles.Get("", r.handlers.Role.ListRoles)
	roles.Post("", r.handlers.Role.CreateRole)
	roles.Get("/:id", r.handlers.Role.GetRole)
	roles.Put("/:id", r.handlers.Role.UpdateRole)
	roles.Delete("/:id", r.handlers.Role.DeleteRole)

	r.app.Use(r.notFoundHandler)
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Security.CORSOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	r.app.Use(middleware.Metrics())

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"service":   "voxlane-console",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
