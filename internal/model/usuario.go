package model

import "time"

// Usuario represents an application user record as stored in the
// `usuarios` table. Passwords are stored only as bcrypt hashes. Users
// are created by registration and never edited or deleted by any
// exposed operation; the EsAdmin flag decides whether the user may
// perform lifecycle mutations and read statistics.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Nombre        – display name.
//  Email         – unique email address (stored lower-cased).
//  PasswordHash  – bcrypt hashed password.
//  EsAdmin       – administrator flag.
//  FechaRegistro – timestamp of registration.
type Usuario struct {
	ID            uint64    // usuarios.id
	Nombre        string    // usuarios.nombre
	Email         string    // usuarios.email
	PasswordHash  string    // usuarios.password_hash
	EsAdmin       bool      // usuarios.es_admin
	FechaRegistro time.Time // usuarios.fecha_registro
}
