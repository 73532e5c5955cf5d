package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "parkcli/internal/errors"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	service ReportServiceInterface
	logger  *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "reports")),
	}
}

// Routes returns the report routes with proper Chi patterns
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/time-of-day", h.GetTimeOfDay)
	r.Get("/common-make", h.GetCommonMake)
	r.Get("/plate-formats", h.GetPlateFormats)

	return r
}

// GetSummary handles GET /api/reports/summary
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.renderError(w, r, "summary", err)
		return
	}
	render.JSON(w, r, summary)
}

// GetTimeOfDay handles GET /api/reports/time-of-day
func (h *ReportHandler) GetTimeOfDay(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.TimeOfDay(r.Context())
	if err != nil {
		h.renderError(w, r, "time-of-day", err)
		return
	}
	render.JSON(w, r, table)
}

// GetCommonMake handles GET /api/reports/common-make
func (h *ReportHandler) GetCommonMake(w http.ResponseWriter, r *http.Request) {
	name, err := h.service.CommonMake(r.Context())
	if err != nil {
		h.renderError(w, r, "common-make", err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"make": name,
	})
}

// GetPlateFormats handles GET /api/reports/plate-formats
func (h *ReportHandler) GetPlateFormats(w http.ResponseWriter, r *http.Request) {
	dist, err := h.service.PlateFormats(r.Context())
	if err != nil {
		h.renderError(w, r, "plate-formats", err)
		return
	}
	render.JSON(w, r, dist)
}

// renderError maps service errors onto RFC 7807 responses.
func (h *ReportHandler) renderError(w http.ResponseWriter, r *http.Request, report string, err error) {
	h.logger.ErrorContext(r.Context(), "report request failed",
		slog.String("report", report),
		slog.String("error", err.Error()))

	var apiErr *apierrors.APIError
	switch {
	case apierrors.IsType(err, apierrors.ErrTypeEmptyFilter):
		apiErr = apierrors.EmptyFilterResultError(err)
	case apierrors.IsType(err, apierrors.ErrTypeNoData):
		apiErr = apierrors.NoDataAvailableError(err)
	default:
		apiErr = apierrors.NewInternalError("failed to build report")
	}

	if renderErr := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); renderErr != nil {
		apierrors.WriteError(w, apiErr)
	}
}
