package parser

import (
	"errors"
	"strings"
	"testing"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
)

const movimentacaoHeader = "Entrada/Saída,Data Movimentação,Produto,Instituição,Quantidade,Preço unitário,Valor da Operação"

func TestParseMovimentacoesCSV(t *testing.T) {
	t.Run("maps credito and debito rows", func(t *testing.T) {
		csv := movimentacaoHeader + "\n" +
			`Crédito,15/05/2024,PETR4 - PETROBRAS,XP,100,"R$ 30,50","R$ 3.050,00"` + "\n" +
			`Débito,16/05/2024,VALE3 - VALE,XP,50,"R$ 60,00","R$ 3.000,00"`

		records, skipped, err := ParseMovimentacoesCSV(csv, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if skipped != 0 {
			t.Errorf("expected 0 skipped, got %d", skipped)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}

		if records[0].EntradaSaida != model.MovimentacaoCredito {
			t.Errorf("entradaSaida = %s, want CREDITO", records[0].EntradaSaida)
		}
		if records[1].EntradaSaida != model.MovimentacaoDebito {
			t.Errorf("entradaSaida = %s, want DEBITO", records[1].EntradaSaida)
		}
		if records[0].CodigoNegociacao != "PETR4" {
			t.Errorf("codigoNegociacao = %q, want PETR4", records[0].CodigoNegociacao)
		}
		if records[0].ValorOperacao != 3050.00 {
			t.Errorf("valorOperacao = %v, want 3050.00", records[0].ValorOperacao)
		}
	})

	t.Run("unaccented spellings are accepted", func(t *testing.T) {
		csv := movimentacaoHeader + "\n" +
			`Credito,15/05/2024,PETR4,XP,100,"R$ 30,50","R$ 3.050,00"`

		records, _, err := ParseMovimentacoesCSV(csv, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0].EntradaSaida != model.MovimentacaoCredito {
			t.Errorf("expected one CREDITO record, got %+v", records)
		}
	})

	t.Run("unknown direction is silently skipped", func(t *testing.T) {
		csv := movimentacaoHeader + "\n" +
			`Transferência,15/05/2024,PETR4,XP,100,"R$ 30,50","R$ 3.050,00"` + "\n" +
			`Crédito,16/05/2024,VALE3,XP,50,"R$ 60,00","R$ 3.000,00"`

		records, skipped, err := ParseMovimentacoesCSV(csv, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected 1 record, got %d", len(records))
		}
		if skipped != 1 {
			t.Errorf("expected 1 skipped, got %d", skipped)
		}
	})

	t.Run("malformed date and numbers are skipped", func(t *testing.T) {
		csv := movimentacaoHeader + "\n" +
			`Crédito,31/02/2024,PETR4,XP,100,"R$ 30,50","R$ 3.050,00"` + "\n" +
			`Crédito,15/05/2024,PETR4,XP,abc,"R$ 30,50","R$ 3.050,00"` + "\n" +
			`Crédito,15/05/2024,PETR4,XP,100,"R$ 30,50",-`

		records, skipped, err := ParseMovimentacoesCSV(csv, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected 0 records, got %d", len(records))
		}
		if skipped != 3 {
			t.Errorf("expected 3 skipped, got %d", skipped)
		}
	})

	t.Run("short rows are skipped", func(t *testing.T) {
		csv := movimentacaoHeader + "\n" + "Crédito,15/05/2024"

		records, skipped, err := ParseMovimentacoesCSV(csv, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 || skipped != 1 {
			t.Errorf("expected short row skipped, got %d records, %d skipped", len(records), skipped)
		}
	})

	t.Run("semicolon delimiter is detected per file", func(t *testing.T) {
		csv := strings.ReplaceAll(movimentacaoHeader, ",", ";") + "\n" +
			`Crédito;15/05/2024;PETR4 - PETROBRAS;XP;100;R$ 30,50;R$ 3.050,00`

		records, skipped, err := ParseMovimentacoesCSV(csv, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if skipped != 0 || len(records) != 1 {
			t.Fatalf("expected 1 record, got %d (skipped %d)", len(records), skipped)
		}
		if records[0].PrecoUnitario != 30.50 {
			t.Errorf("precoUnitario = %v, want 30.50", records[0].PrecoUnitario)
		}
	})

	t.Run("missing required column fails with its name", func(t *testing.T) {
		csv := "Entrada/Saída,Data Movimentação,Produto\nCrédito,15/05/2024,PETR4"

		_, _, err := ParseMovimentacoesCSV(csv, "user-1")
		if !errors.Is(err, apperrors.ErrMissingColumn) {
			t.Fatalf("expected ErrMissingColumn, got %v", err)
		}
		if !strings.Contains(err.Error(), "Instituição") {
			t.Errorf("error should name the missing column, got: %v", err)
		}
	})
}
