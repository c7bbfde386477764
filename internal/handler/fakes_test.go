package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/repository"
	"github.com/jmvillar/turnero/internal/utils"
)

// In-memory stores backing the handler tests. They mirror the semantics
// of the SQL repositories closely enough for the wire-level assertions
// here; SQL specifics are covered by the repository tests.

type fakeCategoriaStore struct {
	cats []model.Categoria
}

func (f *fakeCategoriaStore) ListActive(ctx context.Context) ([]model.Categoria, error) {
	out := make([]model.Categoria, 0, len(f.cats))
	for _, c := range f.cats {
		if c.Activa {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoriaStore) GetByID(ctx context.Context, id uint64) (model.Categoria, error) {
	for _, c := range f.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Categoria{}, repository.ErrCategoriaNotFound
}

type fakeTurnoStore struct {
	turnos   []model.Turno
	nextID   uint64
	catNames map[uint64]string
}

func (f *fakeTurnoStore) NextNumero(ctx context.Context, categoriaID uint64) (int, error) {
	max := 0
	for _, t := range f.turnos {
		if t.CategoriaID == categoriaID && t.Numero > max {
			max = t.Numero
		}
	}
	return max + 1, nil
}

func (f *fakeTurnoStore) Insert(ctx context.Context, t *model.Turno) error {
	f.nextID++
	t.ID = f.nextID
	f.turnos = append(f.turnos, *t)
	return nil
}

func (f *fakeTurnoStore) GetByID(ctx context.Context, id uint64) (model.Turno, error) {
	for _, t := range f.turnos {
		if t.ID == id {
			t.Categoria = f.catNames[t.CategoriaID] // reads join the categoria name
			return t, nil
		}
	}
	return model.Turno{}, repository.ErrTurnoNotFound
}

func (f *fakeTurnoStore) List(ctx context.Context, estado string, categoriaID uint64) ([]model.Turno, error) {
	var out []model.Turno
	for _, t := range f.turnos {
		if estado != "" && t.Estado != estado {
			continue
		}
		if categoriaID != 0 && t.CategoriaID != categoriaID {
			continue
		}
		t.Categoria = f.catNames[t.CategoriaID]
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FechaCreacion.Before(out[j].FechaCreacion)
	})
	return out, nil
}

func (f *fakeTurnoStore) CountWaiting(ctx context.Context, categoriaID uint64) (int, error) {
	n := 0
	for _, t := range f.turnos {
		if t.CategoriaID == categoriaID && t.Estado == model.EstadoEsperando {
			n++
		}
	}
	return n, nil
}

func (f *fakeTurnoStore) update(id uint64, fn func(*model.Turno)) {
	for i := range f.turnos {
		if f.turnos[i].ID == id {
			fn(&f.turnos[i])
			return
		}
	}
}

func (f *fakeTurnoStore) Iniciar(ctx context.Context, id uint64, at time.Time) error {
	f.update(id, func(t *model.Turno) {
		t.Estado = model.EstadoEnAtencion
		v := at
		t.HoraInicio = &v
	})
	return nil
}

func (f *fakeTurnoStore) Completar(ctx context.Context, id uint64, at time.Time) error {
	f.update(id, func(t *model.Turno) {
		t.Estado = model.EstadoCompletado
		v := at
		t.HoraFin = &v
	})
	return nil
}

func (f *fakeTurnoStore) Cancelar(ctx context.Context, id uint64) error {
	f.update(id, func(t *model.Turno) { t.Estado = model.EstadoCancelado })
	return nil
}

func (f *fakeTurnoStore) ListEsperandoBoard(ctx context.Context) ([]repository.BoardEntry, error) {
	waiting, _ := f.List(ctx, model.EstadoEsperando, 0)
	out := make([]repository.BoardEntry, 0, len(waiting))
	for _, t := range waiting {
		v := t.HoraEstimada
		out = append(out, repository.BoardEntry{
			ID:           t.ID,
			Numero:       t.Numero,
			Categoria:    f.catNames[t.CategoriaID],
			HoraEstimada: &v,
		})
	}
	return out, nil
}

func (f *fakeTurnoStore) CountHoyPorEstado(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range f.turnos {
		counts[t.Estado]++
	}
	return counts, nil
}

type fakeUsuarioStore struct {
	byEmail map[string]model.Usuario
	nextID  uint64
}

func newFakeUsuarioStore() *fakeUsuarioStore {
	return &fakeUsuarioStore{byEmail: make(map[string]model.Usuario)}
}

func (f *fakeUsuarioStore) Create(ctx context.Context, nombre, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, dup := f.byEmail[email]; dup {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.byEmail[email] = model.Usuario{
		ID:           f.nextID,
		Nombre:       nombre,
		Email:        email,
		PasswordHash: hash,
	}
	return f.nextID, nil
}

func (f *fakeUsuarioStore) GetByEmail(ctx context.Context, email string) (model.Usuario, error) {
	u, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.Usuario{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsuarioStore) GetByID(ctx context.Context, id uint64) (model.Usuario, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.Usuario{}, sql.ErrNoRows
}

// seed inserts a user with a known bcrypt hash directly, bypassing Create.
func (f *fakeUsuarioStore) seed(t *testing.T, nombre, email, password string, esAdmin bool) model.Usuario {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	f.nextID++
	u := model.Usuario{ID: f.nextID, Nombre: nombre, Email: email, PasswordHash: hash, EsAdmin: esAdmin}
	f.byEmail[email] = u
	return u
}

// jsonRequest builds an echo context carrying a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// decodeBody unmarshals the recorded JSON response.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
