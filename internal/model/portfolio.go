package model

import (
	"fmt"
	"strings"
	"time"
)

// TipoAtivo is the asset-type category a portfolio record belongs to.
// It determines which subset of record fields is populated on import.
type TipoAtivo string

const (
	TipoAcao    TipoAtivo = "ACAO"
	TipoETF     TipoAtivo = "ETF"
	TipoFundo   TipoAtivo = "FUNDO"
	TipoTesouro TipoAtivo = "TESOURO"
	TipoBDR     TipoAtivo = "BDR"
	TipoRFixa   TipoAtivo = "RFIXA"
)

// AllTiposAtivo lists every asset-type category in presentation order.
var AllTiposAtivo = []TipoAtivo{TipoAcao, TipoETF, TipoFundo, TipoTesouro, TipoBDR, TipoRFixa}

// ParseTipoAtivo maps the upload form value (acoes, etf, fii, tesouro, bdr)
// to its TipoAtivo category.
func ParseTipoAtivo(formValue string) (TipoAtivo, error) {
	switch strings.ToLower(strings.TrimSpace(formValue)) {
	case "acoes":
		return TipoAcao, nil
	case "etf":
		return TipoETF, nil
	case "fii":
		return TipoFundo, nil
	case "tesouro":
		return TipoTesouro, nil
	case "bdr":
		return TipoBDR, nil
	default:
		return "", fmt.Errorf("unknown asset type: %q", formValue)
	}
}

// ValidTipoAtivo reports whether s is one of the known asset-type categories.
func ValidTipoAtivo(s string) bool {
	for _, t := range AllTiposAtivo {
		if string(t) == s {
			return true
		}
	}
	return false
}

// PortfolioRecord is one snapshot-dated consolidated position.
//
// Nullable fields are pointers: nil means "not applicable to this asset
// category", which is distinct from zero. The active subset of fields is
// determined by TipoAtivoCategoria.
type PortfolioRecord struct {
	ID                 int64     `json:"id"`
	UserID             string    `json:"-"`
	DataBaseRef        time.Time `json:"dataBaseRef"`
	TipoAtivoCategoria TipoAtivo `json:"tipoAtivoCategoria"`

	ProdutoDescricao *string `json:"produtoDescricao"`
	Instituicao      *string `json:"instituicao"`
	Conta            *string `json:"conta"`
	CodigoNegociacao *string `json:"codigoNegociacao"`
	CodigoIsin       *string `json:"codigoIsin"`

	Quantidade             *float64 `json:"quantidade"`
	QuantidadeDisponivel   *float64 `json:"quantidadeDisponivel"`
	QuantidadeIndisponivel *float64 `json:"quantidadeIndisponivel"`
	ValorAtualizado        *float64 `json:"valorAtualizado"`
	PrecoFechamento        *float64 `json:"precoFechamento"`

	CnpjEmissor             *string `json:"cnpjEmissor"`
	TipoPapel               *string `json:"tipoPapel"`
	AgenteCustodia          *string `json:"agenteCustodia"`
	MotivoIndisponibilidade *string `json:"motivoIndisponibilidade"`

	// Tesouro Direto only.
	Indexador      *string    `json:"indexador"`
	DataVencimento *time.Time `json:"dataVencimento"`
	ValorAplicado  *float64   `json:"valorAplicado"`
	ValorBruto     *float64   `json:"valorBruto"`
	ValorLiquido   *float64   `json:"valorLiquido"`
}

// SeriesPoint is one aggregated point of a dashboard time series.
type SeriesPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// Pagination describes one page of a review listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}
