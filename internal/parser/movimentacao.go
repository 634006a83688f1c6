package parser

import (
	"fmt"
	"strings"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
)

// movimentacaoRequiredColumns must all be present in a movement export header.
var movimentacaoRequiredColumns = []string{
	"Entrada/Saída",
	"Data Movimentação",
	"Produto",
	"Instituição",
	"Quantidade",
	"Preço unitário",
	"Valor da Operação",
}

// ParseMovimentacoesCSV parses a cash/asset movement export. Movement logs
// tolerate bad rows: a malformed row is counted and skipped, never surfaced
// as a per-row error. The skip count is returned for logging only.
//
// The delimiter is detected per file from the header line (';' or ','),
// since brokerages export movement files in both shapes.
func ParseMovimentacoesCSV(content, userID string) ([]model.MovimentacaoRecord, int, error) {
	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, 0, apperrors.ErrEmptyFile
	}

	delim := DetectDelimiter(lines[0])
	header := newHeaderIndex(Tokenize(lines[0], delim))
	if missing := header.missing(movimentacaoRequiredColumns); len(missing) > 0 {
		return nil, 0, fmt.Errorf("%w: %s", apperrors.ErrMissingColumn, strings.Join(missing, ", "))
	}

	var records []model.MovimentacaoRecord
	skipped := 0

	for i := 1; i < len(lines); i++ {
		tokens := Tokenize(lines[i], delim)
		if blankRow(tokens) {
			continue
		}
		if len(tokens) < len(movimentacaoRequiredColumns) {
			skipped++
			continue
		}

		record, ok := mapMovimentacaoRow(header, tokens, userID)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

// mapMovimentacaoRow converts one row, reporting ok=false for any malformed
// field. No detail is kept: movement imports only count skips.
func mapMovimentacaoRow(header headerIndex, tokens []string, userID string) (model.MovimentacaoRecord, bool) {
	var record model.MovimentacaoRecord

	entradaSaida, ok := parseEntradaSaida(header.cell(tokens, "Entrada/Saída"))
	if !ok {
		return record, false
	}

	data, err := ParseBrazilianDate(header.cell(tokens, "Data Movimentação"))
	if err != nil || data == nil {
		return record, false
	}

	quantidade, err := ParseAmbiguousNumber(header.cell(tokens, "Quantidade"))
	if err != nil || quantidade == nil {
		return record, false
	}
	precoUnitario, err := ParseAmbiguousNumber(header.cell(tokens, "Preço unitário"))
	if err != nil || precoUnitario == nil {
		return record, false
	}
	valorOperacao, err := ParseAmbiguousNumber(header.cell(tokens, "Valor da Operação"))
	if err != nil || valorOperacao == nil {
		return record, false
	}

	produto := strings.TrimSpace(header.cell(tokens, "Produto"))

	return model.MovimentacaoRecord{
		UserID:           userID,
		EntradaSaida:     entradaSaida,
		DataMovimentacao: *data,
		Produto:          produto,
		Instituicao:      strings.TrimSpace(header.cell(tokens, "Instituição")),
		Quantidade:       *quantidade,
		PrecoUnitario:    *precoUnitario,
		ValorOperacao:    *valorOperacao,
		CodigoNegociacao: ExtractTicker(produto),
	}, true
}

// parseEntradaSaida classifies the movement direction by substring match,
// accepting both accented and unaccented spellings.
func parseEntradaSaida(raw string) (model.TipoMovimentacao, bool) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "crédito") || strings.Contains(lower, "credito"):
		return model.MovimentacaoCredito, true
	case strings.Contains(lower, "débito") || strings.Contains(lower, "debito"):
		return model.MovimentacaoDebito, true
	default:
		return "", false
	}
}
