package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

type HomeRoutes interface {
	Home(w http.ResponseWriter, r *http.Request)
	Analyze(w http.ResponseWriter, r *http.Request)
}

type SearchRoutes interface {
	Filter(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	SearchState(w http.ResponseWriter, r *http.Request)
}

type AnalysisRoutes interface {
	PropertyAnalysis(w http.ResponseWriter, r *http.Request)
	Chart(w http.ResponseWriter, r *http.Request)
	CachedProperties(w http.ResponseWriter, r *http.Request)
}

type HealthRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	homeHandler     HomeRoutes
	searchHandler   SearchRoutes
	analysisHandler AnalysisRoutes
	healthHandler   HealthRoutes
	apiProxy        http.Handler
	router          *mux.Router
}

// NewRouter creates a router with the app’s routes. apiProxy may be nil.
func NewRouter(
	homeHandler HomeRoutes,
	searchHandler SearchRoutes,
	analysisHandler AnalysisRoutes,
	healthHandler HealthRoutes,
	apiProxy http.Handler,
	router *mux.Router) *Router {
	return &Router{
		homeHandler:     homeHandler,
		searchHandler:   searchHandler,
		analysisHandler: analysisHandler,
		healthHandler:   healthHandler,
		apiProxy:        apiProxy,
		router:          router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/", r.homeHandler.Home).Methods("GET")
	r.router.HandleFunc("/analyze", r.homeHandler.Analyze).Methods("POST")

	// filter bar submit, redirects to /search?cities=..&bhks=..&types=..&budget=..
	r.router.HandleFunc("/filter", r.searchHandler.Filter).Methods("GET", "POST")
	r.router.HandleFunc("/search", r.searchHandler.Search).Methods("GET")
	r.router.HandleFunc("/search/state", r.searchHandler.SearchState).Methods("GET")

	// expects ?propertyId={id}, falls back to the configured default property
	r.router.HandleFunc("/property-analysis", r.analysisHandler.PropertyAnalysis).Methods("GET")
	r.router.HandleFunc("/property-analysis/chart", r.analysisHandler.Chart).Methods("GET")
	r.router.HandleFunc("/property-analysis/cached", r.analysisHandler.CachedProperties).Methods("GET")

	r.router.HandleFunc("/ping", r.healthHandler.Ping).Methods("GET")

	if r.apiProxy != nil {
		r.router.PathPrefix(API_PROXY_PREFIX + "/").Handler(r.apiProxy)
	}
}
