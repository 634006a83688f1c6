package service

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
	"carteirab3/internal/repository"
)

// ReviewService serves the paginated listings used to inspect and correct
// imported data. Count, page and sum queries for one listing run
// concurrently; SQLite in WAL mode handles concurrent readers fine.
type ReviewService struct {
	portfolioRepo    *repository.PortfolioRepository
	proventoRepo     *repository.ProventoRepository
	movimentacaoRepo *repository.MovimentacaoRepository
	categoriaRepo    *repository.CategoriaRepository
}

// NewReviewService creates a new ReviewService with the provided repository
// dependencies.
func NewReviewService(
	portfolioRepo *repository.PortfolioRepository,
	proventoRepo *repository.ProventoRepository,
	movimentacaoRepo *repository.MovimentacaoRepository,
	categoriaRepo *repository.CategoriaRepository,
) *ReviewService {
	return &ReviewService{
		portfolioRepo:    portfolioRepo,
		proventoRepo:     proventoRepo,
		movimentacaoRepo: movimentacaoRepo,
		categoriaRepo:    categoriaRepo,
	}
}

// PortfolioPage returns one page of snapshot records for a reference date.
func (s *ReviewService) PortfolioPage(userID string, filter repository.PortfolioFilter, page, pageSize int) (model.PortfolioReviewPage, error) {
	var result model.PortfolioReviewPage

	var g errgroup.Group
	g.Go(func() (err error) {
		result.Records, err = s.portfolioRepo.ListPage(userID, filter, page, pageSize)
		return err
	})
	g.Go(func() (err error) {
		result.Pagination.TotalCount, err = s.portfolioRepo.Count(userID, filter)
		return err
	})
	g.Go(func() (err error) {
		result.TotalValue, err = s.portfolioRepo.SumValorAtualizado(userID, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveRecords, err)
	}

	result.Pagination = paginate(page, pageSize, result.Pagination.TotalCount)
	return result, nil
}

// PortfolioSnapshotDates lists the reference dates the user has snapshots
// for, newest first. The review screen offers these as the date choices.
func (s *ReviewService) PortfolioSnapshotDates(userID string) ([]string, error) {
	dates, err := s.portfolioRepo.SnapshotDates(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveRecords, err)
	}
	return dates, nil
}

// DeletePortfolioRecord removes one snapshot record owned by the user.
func (s *ReviewService) DeletePortfolioRecord(id int64, userID string) error {
	return mapDeleteError(s.portfolioRepo.Delete(id, userID))
}

// ProventoPage returns one page of income events.
func (s *ReviewService) ProventoPage(userID string, filter repository.ProventoFilter, sortBy, sortDir string, page, pageSize int) (model.ProventoReviewPage, error) {
	var result model.ProventoReviewPage

	var g errgroup.Group
	g.Go(func() (err error) {
		result.Records, err = s.proventoRepo.ListPage(userID, filter, sortBy, sortDir, page, pageSize)
		return err
	})
	g.Go(func() (err error) {
		result.Pagination.TotalCount, err = s.proventoRepo.Count(userID, filter)
		return err
	})
	g.Go(func() (err error) {
		result.TotalValue, err = s.proventoRepo.SumValorLiquido(userID, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveRecords, err)
	}

	result.Pagination = paginate(page, pageSize, result.Pagination.TotalCount)
	return result, nil
}

// DeleteProventoRecord removes one income event owned by the user.
func (s *ReviewService) DeleteProventoRecord(id int64, userID string) error {
	return mapDeleteError(s.proventoRepo.Delete(id, userID))
}

// MovimentacaoPage returns one page of ledger movements. When assetType is
// set the listing is restricted to tickers registered under that category;
// a category with no tickers matches nothing.
func (s *ReviewService) MovimentacaoPage(userID string, filter repository.MovimentacaoFilter, assetType model.TipoAtivo, sortBy, sortDir string, page, pageSize int) (model.MovimentacaoReviewPage, error) {
	var result model.MovimentacaoReviewPage

	if assetType != "" {
		tickers, err := s.categoriaRepo.TickersByTipo(assetType)
		if err != nil {
			return result, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveRecords, err)
		}
		filter.TickersIn = tickers
	}

	var g errgroup.Group
	g.Go(func() (err error) {
		result.Records, err = s.movimentacaoRepo.ListPage(userID, filter, sortBy, sortDir, page, pageSize)
		return err
	})
	g.Go(func() (err error) {
		result.Pagination.TotalCount, err = s.movimentacaoRepo.Count(userID, filter)
		return err
	})
	g.Go(func() (err error) {
		result.TotalValue, err = s.movimentacaoRepo.SumValorOperacao(userID, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveRecords, err)
	}

	result.Pagination = paginate(page, pageSize, result.Pagination.TotalCount)
	return result, nil
}

// DeleteMovimentacaoRecord removes one movement owned by the user.
func (s *ReviewService) DeleteMovimentacaoRecord(id int64, userID string) error {
	return mapDeleteError(s.movimentacaoRepo.Delete(id, userID))
}

func paginate(page, pageSize, totalCount int) model.Pagination {
	totalPages := (totalCount + pageSize - 1) / pageSize
	return model.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

func mapDeleteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrRecordNotFound
	}
	return fmt.Errorf("%w: %v", apperrors.ErrFailedToDeleteRecord, err)
}
