package database

import (
	"context"
	"database/sql"
)

// schemaStatements holds the DDL for the three application tables. The
// statements are idempotent (IF NOT EXISTS) so EnsureSchema can run on
// every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		nombre VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL,
		password_hash VARCHAR(200) NOT NULL,
		es_admin TINYINT(1) NOT NULL DEFAULT 0,
		fecha_registro DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_usuarios_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS categorias (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		nombre VARCHAR(100) NOT NULL,
		descripcion TEXT,
		tiempo_estimado INT NOT NULL DEFAULT 15,
		activa TINYINT(1) NOT NULL DEFAULT 1,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS turnos (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		numero INT NOT NULL,
		categoria_id BIGINT UNSIGNED NOT NULL,
		estado VARCHAR(20) NOT NULL DEFAULT 'esperando',
		fecha_creacion DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		hora_estimada DATETIME NULL,
		hora_inicio DATETIME NULL,
		hora_fin DATETIME NULL,
		PRIMARY KEY (id),
		KEY idx_turnos_categoria (categoria_id),
		KEY idx_turnos_estado (estado),
		CONSTRAINT fk_turnos_categoria FOREIGN KEY (categoria_id) REFERENCES categorias (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
