package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoriaMock(t *testing.T) (*CategoriaRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCategoriaRepo(db), mock
}

func TestCategoriaRepo_ListActive(t *testing.T) {
	repo, mock := newCategoriaMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE activa=1 ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion", "tiempo_estimado", "activa"}).
			AddRow(1, "Atencion General", "Consultas generales", 15, true).
			AddRow(2, "Pagos", nil, 10, true))

	cats, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Atencion General", cats[0].Nombre)
	assert.Equal(t, 15, cats[0].TiempoEstimado)
	// NULL descripcion scans to the empty string.
	assert.Equal(t, "", cats[1].Descripcion)
}

func TestCategoriaRepo_GetByIDUnknown(t *testing.T) {
	repo, mock := newCategoriaMock(t)

	mock.ExpectQuery("SELECT .+ FROM categorias WHERE id=").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion", "tiempo_estimado", "activa"}))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrCategoriaNotFound)
}

func TestCategoriaRepo_SeedDefaultsOnEmptyTable(t *testing.T) {
	repo, mock := newCategoriaMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM categorias")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for _, c := range defaultCategorias {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categorias (nombre, descripcion, tiempo_estimado, activa) VALUES (?,?,?,1)")).
			WithArgs(c.Nombre, c.Descripcion, c.TiempoEstimado).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	require.NoError(t, repo.SeedDefaults(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoriaRepo_SeedDefaultsSkipsPopulatedTable(t *testing.T) {
	repo, mock := newCategoriaMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM categorias")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))

	require.NoError(t, repo.SeedDefaults(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
