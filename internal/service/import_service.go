package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
	"carteirab3/internal/parser"
	"carteirab3/internal/repository"
)

// ImportService orchestrates CSV statement imports. Each statement kind has
// its own persistence policy:
//
//   - portfolio snapshots replace the matching (user, date, asset type) set
//     atomically and reject the whole file on any row error;
//   - provento imports keep going past bad rows and skip records whose
//     identity key is already stored;
//   - movement imports append unconditionally, silently dropping malformed
//     rows.
type ImportService struct {
	db               *sql.DB
	portfolioRepo    *repository.PortfolioRepository
	proventoRepo     *repository.ProventoRepository
	movimentacaoRepo *repository.MovimentacaoRepository
}

// NewImportService creates a new ImportService with the provided repository
// dependencies.
func NewImportService(
	db *sql.DB,
	portfolioRepo *repository.PortfolioRepository,
	proventoRepo *repository.ProventoRepository,
	movimentacaoRepo *repository.MovimentacaoRepository,
) *ImportService {
	return &ImportService{
		db:               db,
		portfolioRepo:    portfolioRepo,
		proventoRepo:     proventoRepo,
		movimentacaoRepo: movimentacaoRepo,
	}
}

// ImportPortfolio replaces one consolidated-position snapshot with the
// contents of a CSV export. On a non-nil error the returned ImportResult is
// still populated for the response body.
func (s *ImportService) ImportPortfolio(userID, content string, dataBaseRef time.Time, tipo model.TipoAtivo) (model.ImportResult, error) {
	records, err := parser.ParsePortfolioCSV(content, userID, dataBaseRef, tipo)
	if err != nil {
		return model.ImportResult{
			Errors:  parseErrorList(err),
			Message: "Erro ao processar CSV",
		}, err
	}
	if len(records) == 0 {
		return model.ImportResult{
			Errors:  []string{apperrors.ErrNoRecords.Error()},
			Message: "Nenhum registro válido encontrado",
		}, apperrors.ErrNoRecords
	}

	var imported, deleted int
	err = repository.Transact(s.db, func(tx *sql.Tx) error {
		deleted, err = s.portfolioRepo.WithTx(tx).DeleteSnapshot(userID, dataBaseRef, tipo)
		if err != nil {
			return err
		}
		if err := s.portfolioRepo.WithTx(tx).InsertRecords(records); err != nil {
			return err
		}
		imported = len(records)
		return nil
	})
	if err != nil {
		return model.ImportResult{
			Errors:  []string{err.Error()},
			Message: "Failed to import portfolio data",
		}, fmt.Errorf("%w: %v", apperrors.ErrFailedToImport, err)
	}

	return model.ImportResult{
		Success:         true,
		RecordsImported: imported,
		RecordsDeleted:  deleted,
		Errors:          []string{},
		Message: fmt.Sprintf("Successfully imported %d records. %d existing records were replaced.",
			imported, deleted),
	}, nil
}

// ImportProventos imports an income/dividend export. Bad rows become
// warnings, and records already stored under the same identity key are
// counted as skipped duplicates (reported via RecordsDeleted).
func (s *ImportService) ImportProventos(userID, content string) (model.ImportResult, error) {
	records, rowErrors, err := parser.ParseProventosCSV(content, userID)
	if err != nil {
		return model.ImportResult{
			Errors:  parseErrorList(err),
			Message: "Erro ao processar CSV",
		}, err
	}
	if len(records) == 0 {
		errs := rowErrors
		if len(errs) == 0 {
			errs = []string{apperrors.ErrNoRecords.Error()}
		}
		return model.ImportResult{
			Errors:  errs,
			Message: "Nenhum registro válido encontrado",
		}, apperrors.ErrNoRecords
	}

	var imported, skipped int
	var importErrors []string

	err = repository.Transact(s.db, func(tx *sql.Tx) error {
		repo := s.proventoRepo.WithTx(tx)
		for _, rec := range records {
			exists, err := repo.Exists(rec)
			if err != nil {
				importErrors = append(importErrors,
					fmt.Sprintf("Erro ao importar %s: %v", rec.CodigoNegociacao, err))
				continue
			}
			if exists {
				skipped++
				continue
			}
			if err := repo.Insert(rec); err != nil {
				importErrors = append(importErrors,
					fmt.Sprintf("Erro ao importar %s: %v", rec.CodigoNegociacao, err))
				continue
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return model.ImportResult{
			Errors:  []string{err.Error()},
			Message: "Failed to import proventos data",
		}, fmt.Errorf("%w: %v", apperrors.ErrFailedToImport, err)
	}

	allErrors := append(rowErrors, importErrors...)
	if allErrors == nil {
		allErrors = []string{}
	}

	message := "Nenhum registro foi importado"
	if imported > 0 {
		message = fmt.Sprintf("%d registros importados com sucesso. %d duplicados ignorados.",
			imported, skipped)
	}

	return model.ImportResult{
		Success:         imported > 0,
		RecordsImported: imported,
		RecordsDeleted:  skipped,
		Errors:          allErrors,
		Message:         message,
	}, nil
}

// ImportMovimentacoes appends a movement export to the ledger. Malformed
// rows are skipped; the skip count is logged, not reported.
func (s *ImportService) ImportMovimentacoes(userID, content string) (model.ImportResult, error) {
	records, skipped, err := parser.ParseMovimentacoesCSV(content, userID)
	if err != nil {
		return model.ImportResult{
			Errors:  movimentacaoErrorList(err),
			Message: "Falha na importação",
		}, err
	}

	if len(records) > 0 {
		err = repository.Transact(s.db, func(tx *sql.Tx) error {
			return s.movimentacaoRepo.WithTx(tx).BulkInsert(records)
		})
		if err != nil {
			return model.ImportResult{
				Errors:  []string{"Erro interno do servidor"},
				Message: "Falha na importação",
			}, fmt.Errorf("%w: %v", apperrors.ErrFailedToImport, err)
		}
	}

	if skipped > 0 {
		log.Printf("movimentacao import for user %s: skipped %d malformed rows", userID, skipped)
	}

	return model.ImportResult{
		Success:         true,
		RecordsImported: len(records),
		RecordsDeleted:  0,
		Errors:          []string{},
		Message:         "Importação realizada com sucesso",
	}, nil
}

// parseErrorList flattens a structural parse error into response messages.
// Aggregated row errors are split back into their per-line entries.
func parseErrorList(err error) []string {
	if errors.Is(err, apperrors.ErrRowErrors) {
		lines := strings.Split(err.Error(), "\n")
		if len(lines) > 1 {
			return lines[1:]
		}
	}
	return []string{err.Error()}
}

// movimentacaoErrorList maps movement-import structural errors to their
// user-facing Portuguese messages.
func movimentacaoErrorList(err error) []string {
	switch {
	case errors.Is(err, apperrors.ErrEmptyFile):
		return []string{"Arquivo vazio ou sem cabeçalhos"}
	case errors.Is(err, apperrors.ErrMissingColumn):
		return []string{"Coluna obrigatória faltando: " +
			strings.TrimPrefix(err.Error(), apperrors.ErrMissingColumn.Error()+": ")}
	default:
		return []string{err.Error()}
	}
}
