package service

import (
	"fmt"
	"time"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
	"carteirab3/internal/repository"
)

// DashboardService aggregates imported data into chart series.
type DashboardService struct {
	portfolioRepo *repository.PortfolioRepository
	proventoRepo  *repository.ProventoRepository
	now           func() time.Time
}

// NewDashboardService creates a new DashboardService with the provided
// repository dependencies.
func NewDashboardService(
	portfolioRepo *repository.PortfolioRepository,
	proventoRepo *repository.ProventoRepository,
) *DashboardService {
	return &DashboardService{
		portfolioRepo: portfolioRepo,
		proventoRepo:  proventoRepo,
		now:           time.Now,
	}
}

// PortfolioEvolutionChart is the total-value-over-time series.
type PortfolioEvolutionChart struct {
	Data   []model.SeriesPoint `json:"data"`
	Period string              `json:"period"`
}

// PortfolioEvolution returns the total snapshot value per reference date for
// the requested period (2y, 5y, 10y or max).
func (s *DashboardService) PortfolioEvolution(userID, period string) (PortfolioEvolutionChart, error) {
	since := s.periodCutoff(period, map[string]int{"2y": 2, "5y": 5, "10y": 10})
	data, err := s.portfolioRepo.EvolutionSeries(userID, since)
	if err != nil {
		return PortfolioEvolutionChart{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveChart, err)
	}
	return PortfolioEvolutionChart{Data: data, Period: period}, nil
}

// AssetTypeChart is a multi-line series, one line per asset category,
// zero-filled where a category has no value on a date.
type AssetTypeChart struct {
	Dates  []string             `json:"dates"`
	Series map[string][]float64 `json:"series"`
	Period string               `json:"period"`
}

// PortfolioByAssetType returns the snapshot value evolution split per asset
// category for the requested period (2y, 5y, 10y or max).
func (s *DashboardService) PortfolioByAssetType(userID, period string) (AssetTypeChart, error) {
	since := s.periodCutoff(period, map[string]int{"2y": 2, "5y": 5, "10y": 10})
	points, err := s.portfolioRepo.ByAssetTypeSeries(userID, since)
	if err != nil {
		return AssetTypeChart{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveChart, err)
	}

	byDate := map[string]map[model.TipoAtivo]float64{}
	dates := []string{}
	for _, p := range points {
		if _, ok := byDate[p.Date]; !ok {
			byDate[p.Date] = map[model.TipoAtivo]float64{}
			dates = append(dates, p.Date) // points arrive date-ordered
		}
		byDate[p.Date][p.Tipo] = p.Value
	}

	series := map[string][]float64{}
	for _, tipo := range model.AllTiposAtivo {
		values := make([]float64, len(dates))
		for i, date := range dates {
			values[i] = byDate[date][tipo]
		}
		series[string(tipo)] = values
	}

	return AssetTypeChart{Dates: dates, Series: series, Period: period}, nil
}

// ProventosChart is the monthly net income series.
type ProventosChart struct {
	Data   []model.SeriesPoint `json:"data"`
	Period string              `json:"period"`
}

// ProventosMonthly returns net income summed per month for the requested
// period (1y, 2y, 5y or all).
func (s *DashboardService) ProventosMonthly(userID, period string) (ProventosChart, error) {
	since := s.periodCutoff(period, map[string]int{"1y": 1, "2y": 2, "5y": 5})
	data, err := s.proventoRepo.MonthlySums(userID, since)
	if err != nil {
		return ProventosChart{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveChart, err)
	}
	return ProventosChart{Data: data, Period: period}, nil
}

// periodCutoff maps a period keyword to its start date. Unknown keywords
// (including "max" and "all") mean no cutoff.
func (s *DashboardService) periodCutoff(period string, years map[string]int) time.Time {
	y, ok := years[period]
	if !ok {
		return time.Time{}
	}
	return s.now().AddDate(-y, 0, 0)
}
