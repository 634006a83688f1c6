package parser

import (
	"fmt"
	"strings"
	"time"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
)

// ParsePortfolioCSV parses a consolidated-position export into
// PortfolioRecords for one (user, reference date, asset type) snapshot.
//
// Snapshot imports are all-or-nothing: every row error is collected with its
// 1-based line number (the header is line 1) and, if any row failed, the
// whole parse fails with an aggregate error so the caller never persists a
// partial snapshot. The user sees every problem in the file at once.
func ParsePortfolioCSV(content, userID string, dataBaseRef time.Time, tipo model.TipoAtivo) ([]model.PortfolioRecord, error) {
	switch tipo {
	case model.TipoAcao, model.TipoETF, model.TipoFundo, model.TipoBDR, model.TipoTesouro:
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTipoAtivo, tipo)
	}

	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, apperrors.ErrEmptyFile
	}

	header := newHeaderIndex(Tokenize(lines[0], ','))

	var records []model.PortfolioRecord
	var rowErrors []string

	for i := 1; i < len(lines); i++ {
		tokens := Tokenize(lines[i], ',')
		if blankRow(tokens) {
			continue
		}

		record, err := mapPortfolioRow(header, tokens, userID, dataBaseRef, tipo)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: %v", i+1, err))
			continue
		}
		records = append(records, record)
	}

	if len(rowErrors) > 0 {
		return nil, fmt.Errorf("%w:\n%s", apperrors.ErrRowErrors, strings.Join(rowErrors, "\n"))
	}
	return records, nil
}

// mapPortfolioRow projects one tokenized row onto the asset-type-specific
// field subset. Columns referenced by the mapping but absent from the header
// are tolerated: the field stays nil.
func mapPortfolioRow(header headerIndex, tokens []string, userID string, dataBaseRef time.Time, tipo model.TipoAtivo) (model.PortfolioRecord, error) {
	record := model.PortfolioRecord{
		UserID:             userID,
		DataBaseRef:        dataBaseRef,
		TipoAtivoCategoria: tipo,
	}

	text := func(column string) *string {
		return SanitizeString(header.cell(tokens, column))
	}
	number := func(column string) (*float64, error) {
		return ParseAmbiguousNumber(header.cell(tokens, column))
	}

	var err error
	switch tipo {
	case model.TipoAcao, model.TipoETF, model.TipoFundo, model.TipoBDR:
		record.ProdutoDescricao = text("Produto")
		record.Instituicao = text("Instituição")
		record.Conta = text("Conta")
		record.CodigoNegociacao = text("Código de Negociação")
		record.CodigoIsin = text("Código ISIN / Distribuição")
		record.TipoPapel = text("Tipo")

		// The categories differ only in where the issuer CNPJ and the
		// custody agent come from. BDR exports share the stock layout.
		switch tipo {
		case model.TipoAcao, model.TipoBDR:
			record.CnpjEmissor = text("CNPJ da Empresa")
			record.AgenteCustodia = text("Escriturador")
		case model.TipoETF:
			record.CnpjEmissor = text("CNPJ do Fundo")
			record.AgenteCustodia = text("Escriturador")
		case model.TipoFundo:
			record.CnpjEmissor = text("CNPJ do Fundo")
			record.AgenteCustodia = text("Administrador")
		}

		if record.Quantidade, err = number("Quantidade"); err != nil {
			return record, err
		}
		if record.QuantidadeDisponivel, err = number("Quantidade Disponível"); err != nil {
			return record, err
		}
		if record.QuantidadeIndisponivel, err = number("Quantidade Indisponível"); err != nil {
			return record, err
		}
		record.MotivoIndisponibilidade = text("Motivo")
		if record.PrecoFechamento, err = number("Preço de Fechamento"); err != nil {
			return record, err
		}
		if record.ValorAtualizado, err = number("Valor Atualizado"); err != nil {
			return record, err
		}

	case model.TipoTesouro:
		// Tesouro Direto exports have a disjoint column set: no account and
		// no trading code.
		record.ProdutoDescricao = text("Produto")
		record.Instituicao = text("Instituição")
		record.CodigoIsin = text("Código ISIN")
		record.Indexador = text("Indexador")
		if record.DataVencimento, err = ParseBrazilianDate(header.cell(tokens, "Vencimento")); err != nil {
			return record, err
		}
		if record.Quantidade, err = number("Quantidade"); err != nil {
			return record, err
		}
		if record.ValorAplicado, err = number("Valor Aplicado"); err != nil {
			return record, err
		}
		if record.ValorBruto, err = number("Valor bruto"); err != nil {
			return record, err
		}
		if record.ValorLiquido, err = number("Valor líquido"); err != nil {
			return record, err
		}
		if record.ValorAtualizado, err = number("Valor Atualizado"); err != nil {
			return record, err
		}

	default:
		return record, fmt.Errorf("%w: %s", apperrors.ErrInvalidTipoAtivo, tipo)
	}

	return record, nil
}
