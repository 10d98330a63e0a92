package assessment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/covicare/covicare/internal/platform/auth"
	"github.com/covicare/covicare/internal/platform/fhir"
	"github.com/covicare/covicare/internal/risk"
	"github.com/covicare/covicare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, fhirGroup *echo.Group) {
	// Recalculation writes a history row – admin, physician, nurse
	writeGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	writeGroup.POST("/patients/:id/risk-assessments", h.Recalculate)

	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	readGroup.GET("/patients/:id/risk-assessments", h.History)
	readGroup.GET("/patients/:id/risk-assessments/latest", h.Latest)
	readGroup.GET("/risk-assessments/:id", h.GetByID)

	fhirRead := fhirGroup.Group("", auth.RequireRole("admin", "physician", "nurse"))
	fhirRead.GET("/RiskAssessment", h.SearchFHIR)
	fhirRead.GET("/RiskAssessment/:id", h.GetFHIR)
}

// Recalculate runs the engine against the patient's current records and
// appends a new assessment. A validation failure from the engine maps to
// 422 so clients can tell incomplete patient data from a bad request.
func (h *Handler) Recalculate(c echo.Context) error {
	pid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var computedBy *uuid.UUID
	if uid := auth.UserIDFromContext(c.Request().Context()); uid != "" {
		if parsed, perr := uuid.Parse(uid); perr == nil {
			computedBy = &parsed
		}
	}

	ra, err := h.svc.Recalculate(c.Request().Context(), pid, computedBy)
	if err != nil {
		var verr *risk.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ra)
}

func (h *Handler) History(c echo.Context) error {
	pid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.History(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Latest(c echo.Context) error {
	pid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ra, err := h.svc.Latest(c.Request().Context(), pid)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no assessment on record")
	}
	return c.JSON(http.StatusOK, ra)
}

func (h *Handler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ra, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	return c.JSON(http.StatusOK, ra)
}

// -- FHIR --

func (h *Handler) GetFHIR(c echo.Context) error {
	ra, err := h.svc.GetByFHIRID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	return c.JSON(http.StatusOK, ra.ToFHIR())
}

// SearchFHIR supports the patient search parameter and returns a searchset
// bundle with pagination links.
func (h *Handler) SearchFHIR(c echo.Context) error {
	patientParam := c.QueryParam("patient")
	if patientParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patient search parameter is required")
	}
	pid, err := uuid.Parse(patientParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient reference")
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.History(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resources := make([]interface{}, len(items))
	for i, item := range items {
		resources[i] = item.ToFHIR()
	}
	bundle := fhir.NewSearchBundle(total, resources)
	for _, l := range pg.FHIRLinks("/fhir/RiskAssessment", total) {
		bundle.Link = append(bundle.Link, fhir.BundleLink{Relation: l.Relation, URL: l.URL})
	}
	return c.JSON(http.StatusOK, bundle)
}
