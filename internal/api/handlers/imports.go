package handlers

import (
	"errors"
	"net/http"

	"carteirab3/internal/api/middleware"
	"carteirab3/internal/api/response"
	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
	"carteirab3/internal/parser"
	"carteirab3/internal/service"
)

// ImportHandler handles CSV statement upload requests.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Portfolio handles POST requests importing a consolidated-position export.
// Besides the file, the form must carry assetType (acoes, etf, fii, tesouro,
// bdr) and date (DD/MM/YYYY), which identify the snapshot being replaced.
//
// Endpoint: POST /api/imports/portfolio
func (h *ImportHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	content, errMsg := csvFromRequest(r)
	if errMsg != "" {
		response.RespondError(w, http.StatusBadRequest, errMsg, "")
		return
	}

	assetType := r.FormValue("assetType")
	if assetType == "" {
		response.RespondError(w, http.StatusBadRequest, "Asset type is required", "")
		return
	}
	dateStr := r.FormValue("date")
	if dateStr == "" {
		response.RespondError(w, http.StatusBadRequest, "Reference date is required", "")
		return
	}

	dataBaseRef, err := parser.ParseBrazilianDate(dateStr)
	if err != nil || dataBaseRef == nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid date format. Use DD/MM/YYYY", "")
		return
	}

	tipo, err := model.ParseTipoAtivo(assetType)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid asset type", err.Error())
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	result, err := h.importService.ImportPortfolio(userID, content, *dataBaseRef, tipo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoRecords) {
			response.RespondError(w, http.StatusBadRequest, "No valid records found in CSV", "")
			return
		}
		response.RespondJSON(w, importFailureStatus(err), result)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// Proventos handles POST requests importing an income/dividend export.
//
// Endpoint: POST /api/imports/proventos
func (h *ImportHandler) Proventos(w http.ResponseWriter, r *http.Request) {
	content, errMsg := csvFromRequest(r)
	if errMsg != "" {
		response.RespondError(w, http.StatusBadRequest, errMsg, "")
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	result, err := h.importService.ImportProventos(userID, content)
	if err != nil {
		response.RespondJSON(w, importFailureStatus(err), result)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// Movimentacoes handles POST requests importing a movement export.
//
// Endpoint: POST /api/imports/movimentacoes
func (h *ImportHandler) Movimentacoes(w http.ResponseWriter, r *http.Request) {
	content, errMsg := csvFromRequest(r)
	if errMsg != "" {
		response.RespondJSON(w, http.StatusBadRequest, model.ImportResult{
			Errors:  []string{"Nenhum arquivo enviado"},
			Message: "Falha na importação",
		})
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	result, err := h.importService.ImportMovimentacoes(userID, content)
	if err != nil {
		response.RespondJSON(w, importFailureStatus(err), result)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// importFailureStatus maps import-service errors to HTTP status codes:
// storage failures are 500s, everything else is a structural 400.
func importFailureStatus(err error) int {
	if errors.Is(err, apperrors.ErrFailedToImport) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
