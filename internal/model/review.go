package model

// Review pages bundle one page of records with pagination metadata and the
// total value of the whole filtered set, not just the page.

type PortfolioReviewPage struct {
	Records    []PortfolioRecord `json:"records"`
	Pagination Pagination        `json:"pagination"`
	TotalValue float64           `json:"totalValue"`
}

type ProventoReviewPage struct {
	Records    []ProventoRecord `json:"records"`
	Pagination Pagination       `json:"pagination"`
	TotalValue float64          `json:"totalValue"`
}

type MovimentacaoReviewPage struct {
	Records    []MovimentacaoRecord `json:"records"`
	Pagination Pagination           `json:"pagination"`
	TotalValue float64              `json:"totalValue"`
}
