package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Open opens a connection to the SQLite database and applies the pragmas the
// application relies on.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	return db, nil
}

// EnsureSchema creates all application tables and indexes if they do not
// exist yet. The schema is applied at startup; dates are stored as
// "2006-01-02" strings so they sort and compare lexicographically.
//
//nolint:funlen // Database schema DDL
func EnsureSchema(db *sql.DB) error {
	schema := `
		-- Users and sessions
		CREATE TABLE IF NOT EXISTS usuario (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			role VARCHAR(10) NOT NULL DEFAULT 'USER',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessao (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES usuario(id) ON DELETE CASCADE
		);

		-- Consolidated portfolio snapshots, one row per position per
		-- (user, reference date, asset category)
		CREATE TABLE IF NOT EXISTS portfolio_consolidado (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id VARCHAR(36) NOT NULL,
			data_base_ref DATE NOT NULL,
			tipo_ativo_categoria VARCHAR(10) NOT NULL,
			produto_descricao TEXT,
			instituicao VARCHAR(255),
			conta VARCHAR(50),
			codigo_negociacao VARCHAR(20),
			codigo_isin VARCHAR(20),
			quantidade FLOAT,
			quantidade_disponivel FLOAT,
			quantidade_indisponivel FLOAT,
			valor_atualizado FLOAT,
			preco_fechamento FLOAT,
			cnpj_emissor VARCHAR(20),
			tipo_papel VARCHAR(50),
			agente_custodia VARCHAR(255),
			motivo_indisponibilidade VARCHAR(255),
			indexador VARCHAR(50),
			data_vencimento DATE,
			valor_aplicado FLOAT,
			valor_bruto FLOAT,
			valor_liquido FLOAT,
			FOREIGN KEY(user_id) REFERENCES usuario(id) ON DELETE CASCADE
		);

		-- Income/dividend events
		CREATE TABLE IF NOT EXISTS proventos_consolidado (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id VARCHAR(36) NOT NULL,
			codigo_negociacao VARCHAR(20) NOT NULL,
			produto_descricao TEXT NOT NULL,
			data_pagamento DATE NOT NULL,
			tipo_evento VARCHAR(50),
			instituicao VARCHAR(255),
			quantidade FLOAT,
			preco_unitario FLOAT,
			valor_liquido FLOAT,
			FOREIGN KEY(user_id) REFERENCES usuario(id) ON DELETE CASCADE
		);

		-- Cash/asset movements (append-only ledger)
		CREATE TABLE IF NOT EXISTS movimentacao (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id VARCHAR(36) NOT NULL,
			entrada_saida VARCHAR(7) NOT NULL,
			data_movimentacao DATE NOT NULL,
			produto TEXT NOT NULL,
			instituicao VARCHAR(255) NOT NULL,
			quantidade FLOAT NOT NULL,
			preco_unitario FLOAT NOT NULL,
			valor_operacao FLOAT NOT NULL,
			codigo_negociacao VARCHAR(20) NOT NULL,
			FOREIGN KEY(user_id) REFERENCES usuario(id) ON DELETE CASCADE
		);

		-- Trading code to asset-type mapping
		CREATE TABLE IF NOT EXISTS categoria_ativo (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			codigo_negociacao VARCHAR(20) NOT NULL UNIQUE,
			tipo VARCHAR(10) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS ix_portfolio_snapshot
			ON portfolio_consolidado(user_id, data_base_ref, tipo_ativo_categoria);
		CREATE INDEX IF NOT EXISTS ix_proventos_identity
			ON proventos_consolidado(user_id, codigo_negociacao, data_pagamento);
		CREATE INDEX IF NOT EXISTS ix_movimentacao_user_date
			ON movimentacao(user_id, data_movimentacao);
		CREATE INDEX IF NOT EXISTS ix_sessao_expires_at ON sessao(expires_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// HealthCheck performs a simple health check on the database
func HealthCheck(db *sql.DB) error {
	return db.Ping()
}
