package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmvillar/turnero/internal/model"
)

type CategoriaRepo struct{ DB *sql.DB }

func NewCategoriaRepo(db *sql.DB) *CategoriaRepo { return &CategoriaRepo{DB: db} }

// defaultCategorias is inserted on first startup when the table is empty.
// The seed only checks that any row exists; editing this list will not
// reconcile an already seeded database.
var defaultCategorias = []model.Categoria{
	{Nombre: "Atencion General", Descripcion: "Consultas generales", TiempoEstimado: 15},
	{Nombre: "Pagos", Descripcion: "Realizar pagos", TiempoEstimado: 10},
	{Nombre: "Reclamos", Descripcion: "Presentar reclamos", TiempoEstimado: 20},
	{Nombre: "Informes", Descripcion: "Solicitar informes", TiempoEstimado: 25},
}

// ListActive returns active categorias in primary-key order.
func (r *CategoriaRepo) ListActive(ctx context.Context) ([]model.Categoria, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, nombre, descripcion, tiempo_estimado, activa FROM categorias WHERE activa=1 ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Categoria
	for rows.Next() {
		var c model.Categoria
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Nombre, &desc, &c.TiempoEstimado, &c.Activa); err != nil {
			return nil, err
		}
		c.Descripcion = desc.String
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a categoria by id.
func (r *CategoriaRepo) GetByID(ctx context.Context, id uint64) (model.Categoria, error) {
	var c model.Categoria
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nombre, descripcion, tiempo_estimado, activa FROM categorias WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Nombre, &desc, &c.TiempoEstimado, &c.Activa)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Categoria{}, ErrCategoriaNotFound
	}
	if err != nil {
		return model.Categoria{}, err
	}
	c.Descripcion = desc.String
	return c, nil
}

// SeedDefaults inserts the default categoria set when the table is empty.
func (r *CategoriaRepo) SeedDefaults(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM categorias").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, c := range defaultCategorias {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT INTO categorias (nombre, descripcion, tiempo_estimado, activa) VALUES (?,?,?,1)",
			c.Nombre, c.Descripcion, c.TiempoEstimado); err != nil {
			return err
		}
	}
	return nil
}
