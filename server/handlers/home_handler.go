package handlers

import (
	"log/slog"
	"net/http"

	"propalyze/logger"
	"propalyze/models"
	"propalyze/server/views"
)

type HomeHandler struct {
	renderer *views.Renderer
	logger   *slog.Logger
}

func NewHomeHandler(renderer *views.Renderer, l *slog.Logger) *HomeHandler {
	return &HomeHandler{renderer: renderer, logger: logger.Component(l, "HomeHandler")}
}

// Home handles GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, models.QuickAnalysisForm{}, nil)
}

// Analyze handles POST /analyze: the quick form goes to the analysis page as query args.
func (h *HomeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := models.QuickAnalysisForm{
		City:         r.PostForm.Get("city"),
		Locality:     r.PostForm.Get("locality"),
		PropertyType: r.PostForm.Get("propertyType"),
		Bhk:          r.PostForm.Get("bhk"),
		Area:         r.PostForm.Get("area"),
		Budget:       r.PostForm.Get("budget"),
	}
	if err := form.Validate(); err != nil {
		h.render(w, r, http.StatusBadRequest, form, err)
		return
	}

	http.Redirect(w, r, "/property-analysis?"+form.ToValues().Encode(), http.StatusSeeOther)
}

func (h *HomeHandler) render(w http.ResponseWriter, r *http.Request, status int, form models.QuickAnalysisForm, formErr error) {
	setHTML(w)
	w.WriteHeader(status)
	page := views.NewHomePage(models.DefaultFilterSelection(), form, formErr)
	if err := h.renderer.Render(w, views.HOME_TEMPLATE, page); err != nil {
		logger.FromContext(r.Context(), h.logger).Error("Error rendering home page", logger.Err(err))
	}
}
