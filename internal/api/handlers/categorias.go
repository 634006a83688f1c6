package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carteirab3/internal/api/response"
	"carteirab3/internal/apperrors"
	"carteirab3/internal/service"
)

// CategoriaHandler handles the trading-code to asset-type mapping CRUD.
type CategoriaHandler struct {
	categoriaService *service.CategoriaService
}

// NewCategoriaHandler creates a new CategoriaHandler
func NewCategoriaHandler(categoriaService *service.CategoriaService) *CategoriaHandler {
	return &CategoriaHandler{categoriaService: categoriaService}
}

type categoriaRequest struct {
	CodigoNegociacao string `json:"codigoNegociacao"`
	Tipo             string `json:"tipo"`
}

// List handles GET requests returning every mapping.
//
// Endpoint: GET /api/categorias
func (h *CategoriaHandler) List(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.categoriaService.List()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch asset categories", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, categorias)
}

// Create handles POST requests registering a trading code.
//
// Endpoint: POST /api/categorias
func (h *CategoriaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoriaRequest
	if err := parseJSON(r, &req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.CodigoNegociacao == "" || req.Tipo == "" {
		response.RespondError(w, http.StatusBadRequest, "Código e Tipo são obrigatórios", "")
		return
	}

	cat, err := h.categoriaService.Create(req.CodigoNegociacao, req.Tipo)
	if err != nil {
		h.respondCategoriaError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, cat)
}

// Update handles PUT requests changing a mapping's code and/or type.
//
// Endpoint: PUT /api/categorias/{id}
func (h *CategoriaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoriaRequest
	if err := parseJSON(r, &req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	cat, err := h.categoriaService.Update(chi.URLParam(r, "id"), req.CodigoNegociacao, req.Tipo)
	if err != nil {
		h.respondCategoriaError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, cat)
}

// Delete handles DELETE requests removing a mapping.
//
// Endpoint: DELETE /api/categorias/{id}
func (h *CategoriaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoriaService.Delete(chi.URLParam(r, "id")); err != nil {
		h.respondCategoriaError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CategoriaHandler) respondCategoriaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidTipoAtivo):
		response.RespondError(w, http.StatusBadRequest, "Tipo de ativo inválido", "")
	case errors.Is(err, apperrors.ErrDuplicateCategoria):
		response.RespondError(w, http.StatusConflict, "Código de negociação já cadastrado", "")
	case errors.Is(err, apperrors.ErrCategoriaNotFound):
		response.RespondError(w, http.StatusNotFound, "Asset category not found", "")
	default:
		response.RespondError(w, http.StatusInternalServerError, "Failed to manage asset categories", err.Error())
	}
}
