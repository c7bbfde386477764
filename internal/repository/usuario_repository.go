package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/utils"
)

type UsuarioRepo struct{ DB *sql.DB }

func NewUsuarioRepo(db *sql.DB) *UsuarioRepo { return &UsuarioRepo{DB: db} }

// Create hashes the password, inserts the user and returns its ID. The
// unique email key is surfaced as ErrEmailExists.
func (r *UsuarioRepo) Create(ctx context.Context, nombre, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, email, password_hash, es_admin) VALUES (?,?,?,0)",
		nombre, email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email. sql.ErrNoRows is passed
// through so callers can treat an unknown email as bad credentials.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (model.Usuario, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.Usuario
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nombre, email, password_hash, es_admin, fecha_registro FROM usuarios WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.EsAdmin, &u.FechaRegistro)
	return u, err
}

// GetByID fetches a user by id.
func (r *UsuarioRepo) GetByID(ctx context.Context, id uint64) (model.Usuario, error) {
	var u model.Usuario
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nombre, email, password_hash, es_admin, fecha_registro FROM usuarios WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.EsAdmin, &u.FechaRegistro)
	return u, err
}

// EnsureDefaultAdmin inserts the bootstrap administrator account when no
// admin user exists yet. The credentials match the ones printed by the
// original deployment scripts so a fresh install is immediately usable.
func (r *UsuarioRepo) EnsureDefaultAdmin(ctx context.Context, cost int) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM usuarios WHERE es_admin=1").Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	hash, err := utils.HashPassword("admin123", cost)
	if err != nil {
		return false, err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, email, password_hash, es_admin) VALUES (?,?,?,1)",
		"Administrador", "admin@turnero.com", hash)
	if err != nil {
		return false, err
	}
	return true, nil
}
