package repository

import (
	"database/sql"
	"fmt"
	"time"

	"carteirab3/internal/model"
)

// PortfolioRepository provides data access methods for the
// portfolio_consolidado table.
type PortfolioRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided
// database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{db: r.db, tx: tx}
}

func (r *PortfolioRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const portfolioColumns = `id, user_id, data_base_ref, tipo_ativo_categoria,
	produto_descricao, instituicao, conta, codigo_negociacao, codigo_isin,
	quantidade, quantidade_disponivel, quantidade_indisponivel,
	valor_atualizado, preco_fechamento, cnpj_emissor, tipo_papel,
	agente_custodia, motivo_indisponibilidade, indexador, data_vencimento,
	valor_aplicado, valor_bruto, valor_liquido`

// DeleteSnapshot removes every record for a (user, reference date, asset
// category) snapshot and returns how many rows were removed.
func (r *PortfolioRepository) DeleteSnapshot(userID string, dataBaseRef time.Time, tipo model.TipoAtivo) (int, error) {
	result, err := r.getQuerier().Exec(`
		DELETE FROM portfolio_consolidado
		WHERE user_id = ? AND data_base_ref = ? AND tipo_ativo_categoria = ?`,
		userID, dataBaseRef.Format(dateLayout), string(tipo))
	if err != nil {
		return 0, fmt.Errorf("failed to delete portfolio snapshot: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return int(deleted), nil
}

// InsertRecords inserts all records of a parsed snapshot.
func (r *PortfolioRepository) InsertRecords(records []model.PortfolioRecord) error {
	q := r.getQuerier()
	for _, rec := range records {
		_, err := q.Exec(`
			INSERT INTO portfolio_consolidado (
				user_id, data_base_ref, tipo_ativo_categoria,
				produto_descricao, instituicao, conta, codigo_negociacao, codigo_isin,
				quantidade, quantidade_disponivel, quantidade_indisponivel,
				valor_atualizado, preco_fechamento, cnpj_emissor, tipo_papel,
				agente_custodia, motivo_indisponibilidade, indexador, data_vencimento,
				valor_aplicado, valor_bruto, valor_liquido
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.UserID, rec.DataBaseRef.Format(dateLayout), string(rec.TipoAtivoCategoria),
			rec.ProdutoDescricao, rec.Instituicao, rec.Conta, rec.CodigoNegociacao, rec.CodigoIsin,
			rec.Quantidade, rec.QuantidadeDisponivel, rec.QuantidadeIndisponivel,
			rec.ValorAtualizado, rec.PrecoFechamento, rec.CnpjEmissor, rec.TipoPapel,
			rec.AgenteCustodia, rec.MotivoIndisponibilidade, rec.Indexador, dateArg(rec.DataVencimento),
			rec.ValorAplicado, rec.ValorBruto, rec.ValorLiquido)
		if err != nil {
			return fmt.Errorf("failed to insert portfolio record: %w", err)
		}
	}
	return nil
}

// PortfolioFilter narrows a snapshot review to one reference date and,
// optionally, one asset category.
type PortfolioFilter struct {
	DataBaseRef time.Time
	Tipo        model.TipoAtivo // empty means all categories
}

func (f PortfolioFilter) where() (string, []any) {
	clause := "WHERE user_id = ? AND data_base_ref = ?"
	args := []any{f.DataBaseRef.Format(dateLayout)}
	if f.Tipo != "" {
		clause += " AND tipo_ativo_categoria = ?"
		args = append(args, string(f.Tipo))
	}
	return clause, args
}

// ListPage returns one page of snapshot records ordered by asset category,
// then by product description.
func (r *PortfolioRepository) ListPage(userID string, filter PortfolioFilter, page, pageSize int) ([]model.PortfolioRecord, error) {
	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.getQuerier().Query(fmt.Sprintf(`
		SELECT %s FROM portfolio_consolidado %s
		ORDER BY tipo_ativo_categoria ASC, produto_descricao ASC, id ASC
		LIMIT ? OFFSET ?`, portfolioColumns, clause), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio records: %w", err)
	}
	defer rows.Close()

	records := []model.PortfolioRecord{}
	for rows.Next() {
		rec, err := scanPortfolioRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns how many portfolio records match the filter.
func (r *PortfolioRepository) Count(userID string, filter PortfolioFilter) (int, error) {
	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)

	var count int
	err := r.getQuerier().QueryRow(
		"SELECT COUNT(*) FROM portfolio_consolidado "+clause, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count portfolio records: %w", err)
	}
	return count, nil
}

// SumValorAtualizado totals the current value of the records matching the
// filter. NULL values count as zero.
func (r *PortfolioRepository) SumValorAtualizado(userID string, filter PortfolioFilter) (float64, error) {
	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)

	var sum float64
	err := r.getQuerier().QueryRow(
		"SELECT COALESCE(SUM(valor_atualizado), 0) FROM portfolio_consolidado "+clause, args...).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum portfolio values: %w", err)
	}
	return sum, nil
}

// Delete removes one record owned by the user. Returns sql.ErrNoRows when
// the record does not exist or belongs to someone else.
func (r *PortfolioRepository) Delete(id int64, userID string) error {
	result, err := r.getQuerier().Exec(
		"DELETE FROM portfolio_consolidado WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// EvolutionSeries returns the total portfolio value per reference date since
// the cutoff, oldest first. A zero cutoff means the full history.
func (r *PortfolioRepository) EvolutionSeries(userID string, since time.Time) ([]model.SeriesPoint, error) {
	query := `
		SELECT data_base_ref, COALESCE(SUM(valor_atualizado), 0)
		FROM portfolio_consolidado
		WHERE user_id = ?`
	args := []any{userID}
	if !since.IsZero() {
		query += " AND data_base_ref >= ?"
		args = append(args, since.Format(dateLayout))
	}
	query += " GROUP BY data_base_ref ORDER BY data_base_ref ASC"

	return r.querySeries(query, args)
}

// AssetTypePoint is one (date, category) aggregate of snapshot values.
type AssetTypePoint struct {
	Date  string
	Tipo  model.TipoAtivo
	Value float64
}

// ByAssetTypeSeries returns per-category snapshot totals since the cutoff,
// grouped by (reference date, category) and ordered by date. A zero cutoff
// means the full history.
func (r *PortfolioRepository) ByAssetTypeSeries(userID string, since time.Time) ([]AssetTypePoint, error) {
	query := `
		SELECT data_base_ref, tipo_ativo_categoria, COALESCE(SUM(valor_atualizado), 0)
		FROM portfolio_consolidado
		WHERE user_id = ?`
	args := []any{userID}
	if !since.IsZero() {
		query += " AND data_base_ref >= ?"
		args = append(args, since.Format(dateLayout))
	}
	query += " GROUP BY data_base_ref, tipo_ativo_categoria ORDER BY data_base_ref ASC"

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset type series: %w", err)
	}
	defer rows.Close()

	points := []AssetTypePoint{}
	for rows.Next() {
		var p AssetTypePoint
		// The driver scans DATE columns as time.Time; format explicitly so
		// chart dates stay YYYY-MM-DD instead of RFC3339.
		var date time.Time
		var tipo string
		if err := rows.Scan(&date, &tipo, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan asset type point: %w", err)
		}
		p.Date = date.Format(dateLayout)
		p.Tipo = model.TipoAtivo(tipo)
		points = append(points, p)
	}
	return points, rows.Err()
}

// SnapshotDates lists the distinct reference dates a user has imported,
// newest first.
func (r *PortfolioRepository) SnapshotDates(userID string) ([]string, error) {
	rows, err := r.getQuerier().Query(`
		SELECT DISTINCT data_base_ref FROM portfolio_consolidado
		WHERE user_id = ? ORDER BY data_base_ref DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot date: %w", err)
		}
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, rows.Err()
}

func (r *PortfolioRepository) querySeries(query string, args []any) ([]model.SeriesPoint, error) {
	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	points := []model.SeriesPoint{}
	for rows.Next() {
		var p model.SeriesPoint
		var date time.Time
		if err := rows.Scan(&date, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan series point: %w", err)
		}
		p.Date = date.Format(dateLayout)
		points = append(points, p)
	}
	return points, rows.Err()
}

func scanPortfolioRecord(rows *sql.Rows) (model.PortfolioRecord, error) {
	var rec model.PortfolioRecord
	var dataBaseRef, tipo string
	var produto, instituicao, conta, codNeg, isin sql.NullString
	var qtd, qtdDisp, qtdIndisp, valorAtu, precoFech sql.NullFloat64
	var cnpj, tipoPapel, agente, motivo, indexador sql.NullString
	var vencimento sql.NullString
	var valorApl, valorBruto, valorLiq sql.NullFloat64

	err := rows.Scan(&rec.ID, &rec.UserID, &dataBaseRef, &tipo,
		&produto, &instituicao, &conta, &codNeg, &isin,
		&qtd, &qtdDisp, &qtdIndisp,
		&valorAtu, &precoFech, &cnpj, &tipoPapel,
		&agente, &motivo, &indexador, &vencimento,
		&valorApl, &valorBruto, &valorLiq)
	if err != nil {
		return rec, fmt.Errorf("failed to scan portfolio record: %w", err)
	}

	rec.DataBaseRef, err = ParseTime(dataBaseRef)
	if err != nil {
		return rec, err
	}
	rec.TipoAtivoCategoria = model.TipoAtivo(tipo)
	rec.ProdutoDescricao = strPtr(produto)
	rec.Instituicao = strPtr(instituicao)
	rec.Conta = strPtr(conta)
	rec.CodigoNegociacao = strPtr(codNeg)
	rec.CodigoIsin = strPtr(isin)
	rec.Quantidade = floatPtr(qtd)
	rec.QuantidadeDisponivel = floatPtr(qtdDisp)
	rec.QuantidadeIndisponivel = floatPtr(qtdIndisp)
	rec.ValorAtualizado = floatPtr(valorAtu)
	rec.PrecoFechamento = floatPtr(precoFech)
	rec.CnpjEmissor = strPtr(cnpj)
	rec.TipoPapel = strPtr(tipoPapel)
	rec.AgenteCustodia = strPtr(agente)
	rec.MotivoIndisponibilidade = strPtr(motivo)
	rec.Indexador = strPtr(indexador)
	rec.DataVencimento, err = datePtr(vencimento)
	if err != nil {
		return rec, err
	}
	rec.ValorAplicado = floatPtr(valorApl)
	rec.ValorBruto = floatPtr(valorBruto)
	rec.ValorLiquido = floatPtr(valorLiq)
	return rec, nil
}
