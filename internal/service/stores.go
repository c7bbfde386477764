package service

import (
	"context"
	"errors"
	"time"

	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/repository"
)

// ErrPermissionDenied is returned when a non-administrator invokes an
// administrative operation. The target row is never touched in that case.
var ErrPermissionDenied = errors.New("permission denied")

// CategoriaStore is the read surface the services need from the
// categoria repository.
type CategoriaStore interface {
	ListActive(ctx context.Context) ([]model.Categoria, error)
	GetByID(ctx context.Context, id uint64) (model.Categoria, error)
}

// TurnoStore is the persistence surface the services need from the turno
// repository. *repository.TurnoRepo satisfies it; tests substitute an
// in-memory fake.
type TurnoStore interface {
	NextNumero(ctx context.Context, categoriaID uint64) (int, error)
	Insert(ctx context.Context, t *model.Turno) error
	GetByID(ctx context.Context, id uint64) (model.Turno, error)
	List(ctx context.Context, estado string, categoriaID uint64) ([]model.Turno, error)
	CountWaiting(ctx context.Context, categoriaID uint64) (int, error)
	Iniciar(ctx context.Context, id uint64, at time.Time) error
	Completar(ctx context.Context, id uint64, at time.Time) error
	Cancelar(ctx context.Context, id uint64) error
	ListEsperandoBoard(ctx context.Context) ([]repository.BoardEntry, error)
	CountHoyPorEstado(ctx context.Context) (map[string]int, error)
}

// UsuarioStore is the surface the auth handlers need from the usuario
// repository.
type UsuarioStore interface {
	Create(ctx context.Context, nombre, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Usuario, error)
	GetByID(ctx context.Context, id uint64) (model.Usuario, error)
}
