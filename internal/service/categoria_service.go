package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
	"carteirab3/internal/repository"
)

// tickerCacheKey caches the full category listing; mutations invalidate it.
const tickerCacheKey = "categorias"

// CategoriaService manages the trading-code to asset-type mapping. Listings
// are cached because movement review hits them on every asset-type filter.
type CategoriaService struct {
	categoriaRepo *repository.CategoriaRepository
	cache         *cache.Cache
}

// NewCategoriaService creates a new CategoriaService with the provided
// repository dependency.
func NewCategoriaService(categoriaRepo *repository.CategoriaRepository) *CategoriaService {
	return &CategoriaService{
		categoriaRepo: categoriaRepo,
		cache:         cache.New(5*time.Minute, 10*time.Minute),
	}
}

// List returns every mapping, ordered by trading code.
func (s *CategoriaService) List() ([]model.CategoriaAtivo, error) {
	if cached, ok := s.cache.Get(tickerCacheKey); ok {
		return cached.([]model.CategoriaAtivo), nil
	}

	categorias, err := s.categoriaRepo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToManageCategorias, err)
	}
	s.cache.Set(tickerCacheKey, categorias, cache.DefaultExpiration)
	return categorias, nil
}

// Create registers a trading code under an asset type. The code is
// normalized to upper case.
func (s *CategoriaService) Create(codigoNegociacao string, tipo string) (model.CategoriaAtivo, error) {
	code := strings.ToUpper(strings.TrimSpace(codigoNegociacao))
	if code == "" || tipo == "" {
		return model.CategoriaAtivo{}, apperrors.ErrInvalidTipoAtivo
	}
	if !model.ValidTipoAtivo(tipo) {
		return model.CategoriaAtivo{}, apperrors.ErrInvalidTipoAtivo
	}

	cat, err := s.categoriaRepo.Create(code, model.TipoAtivo(tipo))
	if err != nil {
		return model.CategoriaAtivo{}, err
	}
	s.cache.Delete(tickerCacheKey)
	return cat, nil
}

// Update changes the code and/or type of a mapping. Empty fields are left
// unchanged.
func (s *CategoriaService) Update(id, codigoNegociacao, tipo string) (model.CategoriaAtivo, error) {
	if tipo != "" && !model.ValidTipoAtivo(tipo) {
		return model.CategoriaAtivo{}, apperrors.ErrInvalidTipoAtivo
	}
	code := strings.ToUpper(strings.TrimSpace(codigoNegociacao))

	if err := s.categoriaRepo.Update(id, code, model.TipoAtivo(tipo)); err != nil {
		return model.CategoriaAtivo{}, err
	}
	s.cache.Delete(tickerCacheKey)
	return s.categoriaRepo.GetByID(id)
}

// Delete removes a mapping.
func (s *CategoriaService) Delete(id string) error {
	if err := s.categoriaRepo.Delete(id); err != nil {
		return err
	}
	s.cache.Delete(tickerCacheKey)
	return nil
}
