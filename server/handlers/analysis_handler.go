package handlers

import (
	"log/slog"
	"net/http"

	"propalyze/api/propalyze"
	"propalyze/logger"
	"propalyze/models"
	services "propalyze/service"
	"propalyze/server/views"
	"propalyze/util"
)

const PRICE_HISTORY_CHART_TITLE = "Price history"

type AnalysisHandler struct {
	analysis          *services.AnalysisService
	renderer          *views.Renderer
	defaultPropertyID string
	logger            *slog.Logger
}

func NewAnalysisHandler(analysis *services.AnalysisService, renderer *views.Renderer, defaultPropertyID string, l *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysis:          analysis,
		renderer:          renderer,
		defaultPropertyID: defaultPropertyID,
		logger:            logger.Component(l, "AnalysisHandler"),
	}
}

// PropertyAnalysis handles GET /property-analysis. The quick form fields, when present,
// are echoed on the page.
func (h *AnalysisHandler) PropertyAnalysis(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	q := r.URL.Query()
	propertyID := h.propertyID(r)

	result := h.analysis.GetAnalysis(r.Context(), propertyID, r.Header.Get("Cookie"))
	form := models.QuickAnalysisForm{
		City:         q.Get("city"),
		Locality:     q.Get("locality"),
		PropertyType: q.Get("propertyType"),
		Bhk:          q.Get("bhk"),
		Area:         q.Get("area"),
		Budget:       q.Get("budget"),
	}

	setHTML(w)
	page := views.NewAnalysisPage(propertyID, result.Analysis, result.Advisory, form)
	if err := h.renderer.Render(w, views.ANALYSIS_TEMPLATE, page); err != nil {
		log.Error("Error rendering property analysis", logger.Err(err))
	}
}

// Chart handles GET /property-analysis/chart with a standalone echarts page.
func (h *AnalysisHandler) Chart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	result := h.analysis.GetAnalysis(r.Context(), h.propertyID(r), r.Header.Get("Cookie"))

	setHTML(w)
	if err := util.PlotPriceHistory(w, PRICE_HISTORY_CHART_TITLE, result.Analysis.Investment.History); err != nil {
		log.Error("Error plotting price history", logger.Err(err))
	}
}

// CachedProperties handles GET /property-analysis/cached, listing the property IDs
// the analysis cache currently holds.
func (h *AnalysisHandler) CachedProperties(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	ids, err := h.analysis.CachedPropertyIDs()
	if err != nil {
		log.Error("Error listing cached property analyses", logger.Err(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analysis cache unavailable"}, log)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"property_ids": ids}, log)
}

func (h *AnalysisHandler) propertyID(r *http.Request) string {
	if id := r.URL.Query().Get(propalyze.PROPERTY_ID_QUERY_ARG); id != "" {
		return id
	}
	return h.defaultPropertyID
}
