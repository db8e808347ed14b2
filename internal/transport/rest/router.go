package rest

import (
	"net/http"
	"strings"
	"winugly/internal/config"
	"winugly/internal/render"
	"winugly/internal/service"
	"winugly/internal/transport/rest/handler"
	"winugly/internal/transport/rest/middleware"
	"winugly/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	_ "winugly/docs"
)

// Container holds all dependencies for the router
type Container struct {
	CoachService   *service.CoachService
	SessionService *service.SessionService
	Renderer       *render.Renderer
	WSHub          *ws.Hub
	CORS           config.CORSConfig
	CookieName     string
	Export         bool
	Logger         *zap.Logger
}

// NewRouter creates the router with the tool page and the API
func NewRouter(c *Container) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()

	// Initialize handlers
	pageHandler := handler.NewPageHandler(c.CoachService, c.Renderer, c.Export, logger)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	analysisHandler := handler.NewAnalysisHandler(c.CoachService)
	reportHandler := handler.NewReportHandler(c.CoachService, c.Renderer, c.Export)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService, logger)

	// Initialize middleware
	sessionMW := middleware.NewSessionMiddleware(c.SessionService, c.CookieName, logger)

	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(corsMiddleware(c.CORS))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", swaggerDoc).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/session", sessionHandler.Issue).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws", wsHandler.SessionWS).Methods("GET")

	// Session routes
	api := v1.NewRoute().Subrouter()
	api.Use(sessionMW.Attach)

	api.HandleFunc("/analyses", analysisHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/analyses", analysisHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/analyses/{id}", analysisHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/reports/current", reportHandler.Current).Methods("GET", "OPTIONS")
	api.HandleFunc("/reports/current", reportHandler.Clear).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/reports/current/html", reportHandler.CurrentHTML).Methods("GET", "OPTIONS")

	// Browser tool
	pages := r.NewRoute().Subrouter()
	pages.Use(sessionMW.Attach)

	pages.HandleFunc("/", pageHandler.Index).Methods("GET")
	pages.HandleFunc("/analyze", pageHandler.Analyze).Methods("POST")
	pages.HandleFunc("/report", pageHandler.Report).Methods("GET")

	return r
}

func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, `{"error":"swagger document unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	origins := orDefault(cfg.AllowedOrigins, "*")
	methods := orDefault(cfg.AllowedMethods, "GET, POST, PUT, DELETE, OPTIONS")
	headers := orDefault(cfg.AllowedHeaders, "Content-Type, Authorization")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			w.Header().Set("Access-Control-Expose-Headers", middleware.SessionHeader)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
