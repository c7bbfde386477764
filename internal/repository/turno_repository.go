package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmvillar/turnero/internal/model"
)

type TurnoRepo struct{ DB *sql.DB }

func NewTurnoRepo(db *sql.DB) *TurnoRepo { return &TurnoRepo{DB: db} }

// Reads join categorias so every turno leaves the repository carrying
// its categoria name; the frontend renders it next to the numero.
const turnoColumns = "t.id, t.numero, t.categoria_id, c.nombre, t.estado, t.fecha_creacion, t.hora_estimada, t.hora_inicio, t.hora_fin"

const turnoFrom = " FROM turnos t JOIN categorias c ON c.id = t.categoria_id"

func scanTurno(row interface{ Scan(...any) error }) (model.Turno, error) {
	var t model.Turno
	var estimada, inicio, fin sql.NullTime
	err := row.Scan(&t.ID, &t.Numero, &t.CategoriaID, &t.Categoria, &t.Estado, &t.FechaCreacion, &estimada, &inicio, &fin)
	if err != nil {
		return model.Turno{}, err
	}
	if estimada.Valid {
		t.HoraEstimada = estimada.Time
	}
	if inicio.Valid {
		v := inicio.Time
		t.HoraInicio = &v
	}
	if fin.Valid {
		v := fin.Time
		t.HoraFin = &v
	}
	return t, nil
}

// NextNumero returns max(numero)+1 for the categoria, or 1 when no turno
// exists yet. The read is a separate statement from the insert, so two
// concurrent creations for the same categoria can compute the same
// numero; that race is part of the documented behavior of the system.
func (r *TurnoRepo) NextNumero(ctx context.Context, categoriaID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(numero), 0) FROM turnos WHERE categoria_id=?",
		categoriaID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// Insert persists a new turno and fills its generated ID.
func (r *TurnoRepo) Insert(ctx context.Context, t *model.Turno) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO turnos (numero, categoria_id, estado, fecha_creacion, hora_estimada) VALUES (?,?,?,?,?)",
		t.Numero, t.CategoriaID, t.Estado, t.FechaCreacion, t.HoraEstimada)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a turno by id.
func (r *TurnoRepo) GetByID(ctx context.Context, id uint64) (model.Turno, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+turnoColumns+turnoFrom+" WHERE t.id=? LIMIT 1", id)
	t, err := scanTurno(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Turno{}, ErrTurnoNotFound
	}
	return t, err
}

// List returns turnos matching the optional estado and categoria filters,
// ordered by creation time ascending. Empty filters return all turnos.
func (r *TurnoRepo) List(ctx context.Context, estado string, categoriaID uint64) ([]model.Turno, error) {
	query := "SELECT " + turnoColumns + turnoFrom + " WHERE 1=1"
	args := make([]any, 0, 2)
	if estado != "" {
		query += " AND t.estado=?"
		args = append(args, estado)
	}
	if categoriaID != 0 {
		query += " AND t.categoria_id=?"
		args = append(args, categoriaID)
	}
	query += " ORDER BY t.fecha_creacion ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Turno
	for rows.Next() {
		t, err := scanTurno(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountWaiting counts turnos in estado esperando for one categoria. It is
// read before a new turno is inserted, so the new turno itself is not
// counted toward its own estimate.
func (r *TurnoRepo) CountWaiting(ctx context.Context, categoriaID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM turnos WHERE categoria_id=? AND estado=?",
		categoriaID, model.EstadoEsperando).Scan(&n)
	return n, err
}

// Iniciar overwrites estado with en_atencion and stamps hora_inicio.
// There is no guard on the current estado; callers decide whether the
// turno exists beforehand.
func (r *TurnoRepo) Iniciar(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE turnos SET estado=?, hora_inicio=? WHERE id=?",
		model.EstadoEnAtencion, at, id)
	return err
}

// Completar overwrites estado with completado and stamps hora_fin.
func (r *TurnoRepo) Completar(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE turnos SET estado=?, hora_fin=? WHERE id=?",
		model.EstadoCompletado, at, id)
	return err
}

// Cancelar overwrites estado with cancelado. No timestamp is recorded.
func (r *TurnoRepo) Cancelar(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE turnos SET estado=? WHERE id=?",
		model.EstadoCancelado, id)
	return err
}

// BoardEntry is the shape served to the public waiting board: the turno
// plus its categoria name and the estimate formatted client-side.
type BoardEntry struct {
	ID           uint64     `json:"id"`
	Numero       int        `json:"numero"`
	Categoria    string     `json:"categoria"`
	HoraEstimada *time.Time `json:"-"`
}

// ListEsperandoBoard returns waiting turnos joined with their categoria
// name, oldest first. This is the global FIFO serving order.
func (r *TurnoRepo) ListEsperandoBoard(ctx context.Context) ([]BoardEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.numero, c.nombre, t.hora_estimada
		 FROM turnos t JOIN categorias c ON c.id = t.categoria_id
		 WHERE t.estado=? ORDER BY t.fecha_creacion ASC`,
		model.EstadoEsperando)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BoardEntry
	for rows.Next() {
		var e BoardEntry
		var estimada sql.NullTime
		if err := rows.Scan(&e.ID, &e.Numero, &e.Categoria, &estimada); err != nil {
			return nil, err
		}
		if estimada.Valid {
			v := estimada.Time
			e.HoraEstimada = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountHoyPorEstado returns the number of turnos created on the server's
// current calendar date, grouped by estado. Missing estados simply do
// not appear in the map.
func (r *TurnoRepo) CountHoyPorEstado(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT estado, COUNT(*) FROM turnos WHERE DATE(fecha_creacion)=CURDATE() GROUP BY estado")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var estado string
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, err
		}
		counts[estado] = n
	}
	return counts, rows.Err()
}
