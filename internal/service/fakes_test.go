package service

import (
	"context"
	"sort"
	"time"

	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/repository"
)

// memCategoriaStore is an in-memory CategoriaStore for tests.
type memCategoriaStore struct {
	cats map[uint64]model.Categoria
}

func newMemCategoriaStore(cats ...model.Categoria) *memCategoriaStore {
	m := &memCategoriaStore{cats: make(map[uint64]model.Categoria)}
	for _, c := range cats {
		m.cats[c.ID] = c
	}
	return m
}

func (m *memCategoriaStore) ListActive(ctx context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range m.cats {
		if c.Activa {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCategoriaStore) GetByID(ctx context.Context, id uint64) (model.Categoria, error) {
	c, ok := m.cats[id]
	if !ok {
		return model.Categoria{}, repository.ErrCategoriaNotFound
	}
	return c, nil
}

// memTurnoStore is an in-memory TurnoStore mirroring the SQL semantics
// of the real repository, including the separate read-max and insert
// steps of numero assignment.
type memTurnoStore struct {
	turnos   []model.Turno
	nextID   uint64
	catNames map[uint64]string
}

func newMemTurnoStore() *memTurnoStore {
	return &memTurnoStore{nextID: 1, catNames: make(map[uint64]string)}
}

func (m *memTurnoStore) NextNumero(ctx context.Context, categoriaID uint64) (int, error) {
	max := 0
	for _, t := range m.turnos {
		if t.CategoriaID == categoriaID && t.Numero > max {
			max = t.Numero
		}
	}
	return max + 1, nil
}

func (m *memTurnoStore) Insert(ctx context.Context, t *model.Turno) error {
	t.ID = m.nextID
	m.nextID++
	m.turnos = append(m.turnos, *t)
	return nil
}

func (m *memTurnoStore) GetByID(ctx context.Context, id uint64) (model.Turno, error) {
	for _, t := range m.turnos {
		if t.ID == id {
			t.Categoria = m.catNames[t.CategoriaID] // reads join the categoria name
			return t, nil
		}
	}
	return model.Turno{}, repository.ErrTurnoNotFound
}

func (m *memTurnoStore) List(ctx context.Context, estado string, categoriaID uint64) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range m.turnos {
		if estado != "" && t.Estado != estado {
			continue
		}
		if categoriaID != 0 && t.CategoriaID != categoriaID {
			continue
		}
		t.Categoria = m.catNames[t.CategoriaID]
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FechaCreacion.Before(out[j].FechaCreacion) })
	return out, nil
}

func (m *memTurnoStore) CountWaiting(ctx context.Context, categoriaID uint64) (int, error) {
	n := 0
	for _, t := range m.turnos {
		if t.CategoriaID == categoriaID && t.Estado == model.EstadoEsperando {
			n++
		}
	}
	return n, nil
}

func (m *memTurnoStore) update(id uint64, fn func(*model.Turno)) error {
	for i := range m.turnos {
		if m.turnos[i].ID == id {
			fn(&m.turnos[i])
			return nil
		}
	}
	return repository.ErrTurnoNotFound
}

func (m *memTurnoStore) Iniciar(ctx context.Context, id uint64, at time.Time) error {
	return m.update(id, func(t *model.Turno) {
		t.Estado = model.EstadoEnAtencion
		v := at
		t.HoraInicio = &v
	})
}

func (m *memTurnoStore) Completar(ctx context.Context, id uint64, at time.Time) error {
	return m.update(id, func(t *model.Turno) {
		t.Estado = model.EstadoCompletado
		v := at
		t.HoraFin = &v
	})
}

func (m *memTurnoStore) Cancelar(ctx context.Context, id uint64) error {
	return m.update(id, func(t *model.Turno) { t.Estado = model.EstadoCancelado })
}

func (m *memTurnoStore) ListEsperandoBoard(ctx context.Context) ([]repository.BoardEntry, error) {
	ts, _ := m.List(ctx, model.EstadoEsperando, 0)
	out := make([]repository.BoardEntry, 0, len(ts))
	for _, t := range ts {
		he := t.HoraEstimada
		out = append(out, repository.BoardEntry{
			ID:           t.ID,
			Numero:       t.Numero,
			Categoria:    m.catNames[t.CategoriaID],
			HoraEstimada: &he,
		})
	}
	return out, nil
}

func (m *memTurnoStore) CountHoyPorEstado(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range m.turnos {
		counts[t.Estado]++
	}
	return counts, nil
}
