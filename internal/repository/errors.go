// Package repository implements persistence for usuarios, categorias and
// turnos on top of database/sql. Sentinel errors defined here let the
// handler layer distinguish failure scenarios without inspecting driver
// errors: ErrCategoriaNotFound and ErrTurnoNotFound map to HTTP 404,
// ErrEmailExists maps to HTTP 400 on registration.
package repository

import "errors"

// ErrCategoriaNotFound is returned when a categoria id does not exist.
var ErrCategoriaNotFound = errors.New("categoria not found")

// ErrTurnoNotFound is returned when a turno id does not exist.
var ErrTurnoNotFound = errors.New("turno not found")

// ErrEmailExists is returned when registration hits the unique email key.
var ErrEmailExists = errors.New("email already exists")
