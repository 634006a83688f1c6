package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"carteirab3/internal/api/middleware"
	"carteirab3/internal/api/response"
	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
	"carteirab3/internal/parser"
	"carteirab3/internal/repository"
	"carteirab3/internal/service"
)

// ReviewHandler handles the listings used to inspect and correct imported
// records.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Portfolio handles GET requests listing one snapshot's records.
//
// Endpoint: GET /api/reviews/portfolio?date=DD/MM/YYYY&assetType=&page=
func (h *ReviewHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dateStr := q.Get("date")
	if dateStr == "" {
		response.RespondError(w, http.StatusBadRequest, "Date is required", "")
		return
	}
	dataBaseRef, err := parser.ParseBrazilianDate(dateStr)
	if err != nil || dataBaseRef == nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid date format. Use DD/MM/YYYY", "")
		return
	}

	filter := repository.PortfolioFilter{DataBaseRef: *dataBaseRef}
	if assetType := q.Get("assetType"); assetType != "" && assetType != "TODOS" {
		if !model.ValidTipoAtivo(assetType) {
			response.RespondError(w, http.StatusBadRequest, "Invalid asset type", "")
			return
		}
		filter.Tipo = model.TipoAtivo(assetType)
	}

	userID := middleware.UserIDFrom(r.Context())
	page := intParam(q.Get("page"), 1)

	result, err := h.reviewService.PortfolioPage(userID, filter, page, 15)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch portfolio data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// PortfolioDates handles GET requests listing the reference dates the user
// can review, newest first.
//
// Endpoint: GET /api/reviews/portfolio/dates
func (h *ReviewHandler) PortfolioDates(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())

	dates, err := h.reviewService.PortfolioSnapshotDates(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch portfolio data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string][]string{"dates": dates})
}

// DeletePortfolio handles DELETE requests removing one snapshot record.
//
// Endpoint: DELETE /api/reviews/portfolio?id=
func (h *ReviewHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.reviewService.DeletePortfolioRecord)
}

// Proventos handles GET requests listing income events.
//
// Endpoint: GET /api/reviews/proventos?dataPagamento=&ticker=&instituicao=
// &page=&sortBy=&sortOrder=
func (h *ReviewHandler) Proventos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter repository.ProventoFilter
	if dateStr := q.Get("dataPagamento"); dateStr != "" {
		dataPagamento, err := parser.ParseBrazilianDate(dateStr)
		if err != nil || dataPagamento == nil {
			response.RespondError(w, http.StatusBadRequest, "Invalid date format. Use DD/MM/YYYY", "")
			return
		}
		filter.DataPagamento = dataPagamento
	}
	filter.Ticker = strings.TrimSpace(q.Get("ticker"))
	filter.Instituicao = strings.TrimSpace(q.Get("instituicao"))

	userID := middleware.UserIDFrom(r.Context())
	page := intParam(q.Get("page"), 1)
	sortBy := paramOr(q.Get("sortBy"), "dataPagamento")
	sortOrder := paramOr(q.Get("sortOrder"), "desc")

	result, err := h.reviewService.ProventoPage(userID, filter, sortBy, sortOrder, page, 15)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch proventos data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// DeleteProvento handles DELETE requests removing one income event.
//
// Endpoint: DELETE /api/reviews/proventos?id=
func (h *ReviewHandler) DeleteProvento(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.reviewService.DeleteProventoRecord)
}

// Movimentacoes handles GET requests listing ledger movements.
//
// Endpoint: GET /api/reviews/movimentacoes?startDate=&endDate=&ticker=
// &assetType=&page=&pageSize=&sortBy=&sortOrder=
func (h *ReviewHandler) Movimentacoes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter repository.MovimentacaoFilter
	startStr, endStr := q.Get("startDate"), q.Get("endDate")
	if startStr != "" && endStr != "" {
		start, errStart := parser.ParseBrazilianDate(startStr)
		end, errEnd := parser.ParseBrazilianDate(endStr)
		if errStart != nil || errEnd != nil || start == nil || end == nil {
			response.RespondError(w, http.StatusBadRequest, "Invalid date format. Use DD/MM/YYYY", "")
			return
		}
		filter.StartDate = start
		filter.EndDate = end
	}
	filter.Ticker = strings.ToUpper(strings.TrimSpace(q.Get("ticker")))

	var assetType model.TipoAtivo
	if raw := q.Get("assetType"); raw != "" && raw != "TODOS" {
		if !model.ValidTipoAtivo(raw) {
			response.RespondError(w, http.StatusBadRequest, "Invalid asset type", "")
			return
		}
		assetType = model.TipoAtivo(raw)
	}

	userID := middleware.UserIDFrom(r.Context())
	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("pageSize"), 10)
	sortBy := paramOr(q.Get("sortBy"), "dataMovimentacao")
	sortOrder := paramOr(q.Get("sortOrder"), "desc")

	result, err := h.reviewService.MovimentacaoPage(userID, filter, assetType, sortBy, sortOrder, page, pageSize)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// DeleteMovimentacao handles DELETE requests removing one movement.
//
// Endpoint: DELETE /api/reviews/movimentacoes?id=
func (h *ReviewHandler) DeleteMovimentacao(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.reviewService.DeleteMovimentacaoRecord)
}

func (h *ReviewHandler) deleteRecord(w http.ResponseWriter, r *http.Request, del func(id int64, userID string) error) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		response.RespondError(w, http.StatusBadRequest, "Record ID is required", "")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid record ID", "")
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	if err := del(id, userID); err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			response.RespondError(w, http.StatusNotFound, "Record not found", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "Failed to delete record", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// intParam parses a positive integer query parameter, falling back to def.
func intParam(raw string, def int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func paramOr(raw, def string) string {
	if raw == "" {
		return def
	}
	return raw
}
