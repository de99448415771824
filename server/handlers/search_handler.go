package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"propalyze/logger"
	"propalyze/models"
	services "propalyze/service"
	"propalyze/server/views"
)

const SESSION_COOKIE_NAME = "propalyze_session"

// PAGE_QUERY_ARG scopes a search to one results page. JSON clients get it back
// in SEARCH_PAGE_HEADER and pass it on later searches and state polls.
const PAGE_QUERY_ARG = "page"
const SEARCH_PAGE_HEADER = "X-Search-Page"

// Filter bar form fields.
const (
	CITY_FORM_ARG             = "city"
	ADD_CITY_FORM_ARG         = "add_city"
	REMOVE_CITY_FORM_ARG      = "remove_city"
	REMOVE_LAST_CITY_FORM_ARG = "remove_last_city"
	TYPE_FORM_ARG             = "type"
	BHK_FORM_ARG              = "bhk"
	BUDGET_FORM_ARG           = "budget"
	PAGE_FORM_ARG             = "page"
)

type SearchHandler struct {
	sessions   *services.SessionStore
	renderer   *views.Renderer
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewSearchHandler(sessions *services.SessionStore, renderer *views.Renderer, sessionTTL time.Duration, l *slog.Logger) *SearchHandler {
	return &SearchHandler{
		sessions:   sessions,
		renderer:   renderer,
		sessionTTL: sessionTTL,
		logger:     logger.Component(l, "SearchHandler"),
	}
}

// Filter handles GET|POST /filter: builds a selection from the filter bar form and
// redirects to the encoded search URL.
func (h *SearchHandler) Filter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	selection, err := selectionFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, searchPath(selection, r.Form.Get(PAGE_FORM_ARG)), http.StatusSeeOther)
}

// searchPath keeps the page ID of the results page the form was posted from.
func searchPath(selection *models.FilterSelection, pageID string) string {
	if _, err := uuid.Parse(pageID); err != nil {
		return selection.SearchPath()
	}
	q := selection.ToValues()
	q.Set(PAGE_QUERY_ARG, pageID)
	return "/search?" + q.Encode()
}

func selectionFromForm(r *http.Request) (*models.FilterSelection, error) {
	selection := models.NewFilterSelection()

	for _, city := range r.Form[CITY_FORM_ARG] {
		selection.AddCity(city)
	}
	for _, city := range strings.Split(r.Form.Get(ADD_CITY_FORM_ARG), ",") {
		selection.AddCity(city)
	}
	if city := r.Form.Get(REMOVE_CITY_FORM_ARG); city != "" {
		selection.RemoveCity(city)
	}
	if r.Form.Get(REMOVE_LAST_CITY_FORM_ARG) != "" {
		selection.RemoveLastCity()
	}

	for _, t := range r.Form[TYPE_FORM_ARG] {
		if err := selection.ToggleType(t); err != nil {
			return nil, err
		}
	}
	for _, b := range r.Form[BHK_FORM_ARG] {
		if err := selection.ToggleBhk(b); err != nil {
			return nil, err
		}
	}
	if budget := r.Form.Get(BUDGET_FORM_ARG); budget != "" {
		if err := selection.SetBudget(budget); err != nil {
			return nil, err
		}
	}
	return selection, nil
}

// Search handles GET /search. HTML responses are streamed: the page and its loading
// indicator are flushed before the search runs. Clients asking for JSON get the
// result as a single response.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	session := h.sessionFor(w, r)
	query := r.URL.Query()
	payload := models.ParseSearchPayload(query)

	if wantsJSON(r) {
		h.searchJSON(w, r, session, payload)
		return
	}

	page := views.NewResultsPage(models.SelectionFromValues(query))
	page.Filter.PageID = session.Key().Page
	setHTML(w)
	if err := h.renderer.Render(w, views.SEARCH_START_TEMPLATE, page); err != nil {
		log.Error("Error rendering search page", logger.Err(err))
		return
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	result, err := session.Search(r.Context(), payload, r.Header.Get("Cookie"))
	switch {
	case errors.Is(err, services.ErrSuperseded):
		page.Superseded = true
	case err != nil:
		log.Info("Search abandoned", logger.Err(err))
		return
	default:
		page.SetListings(result.Listings, result.Advisory)
	}

	if err := h.renderer.Render(w, views.SEARCH_RESULTS_TEMPLATE, page); err != nil {
		log.Error("Error rendering search results", logger.Err(err))
	}
}

func (h *SearchHandler) searchJSON(w http.ResponseWriter, r *http.Request, session *services.SearchSession, payload models.SearchPayload) {
	log := logger.FromContext(r.Context(), h.logger)
	w.Header().Set(SEARCH_PAGE_HEADER, session.Key().Page)

	result, err := session.Search(r.Context(), payload, r.Header.Get("Cookie"))
	if errors.Is(err, services.ErrSuperseded) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()}, log)
		return
	}
	if err != nil {
		log.Info("Search abandoned", logger.Err(err))
		return
	}
	writeJSON(w, http.StatusOK, result, log)
}

// SearchState handles GET /search/state?page=<id>.
func (h *SearchHandler) SearchState(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	snapshot := services.SessionSnapshot{State: services.SEARCH_STATE_IDLE}
	if c, err := r.Cookie(SESSION_COOKIE_NAME); err == nil {
		if session, ok := h.sessions.Lookup(c.Value, r.URL.Query().Get(PAGE_QUERY_ARG)); ok {
			snapshot = session.Snapshot()
		}
	}
	writeJSON(w, http.StatusOK, snapshot, log)
}

func (h *SearchHandler) sessionFor(w http.ResponseWriter, r *http.Request) *services.SearchSession {
	id := ""
	if c, err := r.Cookie(SESSION_COOKIE_NAME); err == nil {
		id = c.Value
	}
	session := h.sessions.Get(id, r.URL.Query().Get(PAGE_QUERY_ARG))
	if visitor := session.Key().Visitor; visitor != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SESSION_COOKIE_NAME,
			Value:    visitor,
			Path:     "/",
			MaxAge:   int(h.sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return session
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
