package parser

import (
	"fmt"
	"strings"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
)

// proventoRequiredColumns must all be present in a provento export header.
var proventoRequiredColumns = []string{
	"Produto",
	"Pagamento",
	"Tipo de Evento",
	"Instituição",
	"Quantidade",
	"Preço unitário",
	"Valor líquido",
}

// ParseProventosCSV parses an income/dividend export. Unlike snapshot
// imports, row errors do not abort: every parseable record is returned
// together with the per-line error messages, and the caller imports the
// partial batch while reporting the errors as warnings.
//
// A missing required column is structural and fails before any row is read.
func ParseProventosCSV(content, userID string) ([]model.ProventoRecord, []string, error) {
	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, nil, apperrors.ErrEmptyFile
	}

	header := newHeaderIndex(Tokenize(lines[0], ','))
	if missing := header.missing(proventoRequiredColumns); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrMissingColumn, strings.Join(missing, ", "))
	}

	var records []model.ProventoRecord
	var rowErrors []string

	for i := 1; i < len(lines); i++ {
		tokens := Tokenize(lines[i], ',')
		if blankRow(tokens) {
			continue
		}

		record, err := mapProventoRow(header, tokens, userID)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: %v", i+1, err))
			continue
		}
		records = append(records, record)
	}

	return records, rowErrors, nil
}

func mapProventoRow(header headerIndex, tokens []string, userID string) (model.ProventoRecord, error) {
	var record model.ProventoRecord

	produto := strings.TrimSpace(header.cell(tokens, "Produto"))
	if produto == "" {
		return record, fmt.Errorf("%w: empty 'Produto'", apperrors.ErrTickerNotFound)
	}

	codigo := ExtractTicker(produto)
	if codigo == "" {
		return record, fmt.Errorf("%w: %q", apperrors.ErrTickerNotFound, produto)
	}

	dataPagamento, err := ParseBrazilianDate(header.cell(tokens, "Pagamento"))
	if err != nil {
		return record, err
	}
	if dataPagamento == nil {
		return record, fmt.Errorf("%w: missing 'Pagamento'", apperrors.ErrInvalidDate)
	}

	record = model.ProventoRecord{
		UserID:           userID,
		CodigoNegociacao: codigo,
		ProdutoDescricao: produto,
		DataPagamento:    *dataPagamento,
		TipoEvento:       SanitizeString(header.cell(tokens, "Tipo de Evento")),
		Instituicao:      SanitizeString(header.cell(tokens, "Instituição")),
	}

	if record.Quantidade, err = ParseAmbiguousNumber(header.cell(tokens, "Quantidade")); err != nil {
		return record, err
	}
	if record.PrecoUnitario, err = ParseAmbiguousNumber(header.cell(tokens, "Preço unitário")); err != nil {
		return record, err
	}
	if record.ValorLiquido, err = ParseAmbiguousNumber(header.cell(tokens, "Valor líquido")); err != nil {
		return record, err
	}

	return record, nil
}
