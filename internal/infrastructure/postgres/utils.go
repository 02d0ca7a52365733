package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02" // ej. UUID mal formado
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// isUndefinedValue indica que el valor no existe o no es válido para el tipo de la columna
// (FK inexistente o UUID mal formado): se trata como dato inválido del llamador.
func isUndefinedValue(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeForeignKeyViolation, codeCheckViolation, codeInvalidText:
		return true
	}
	return false
}

// storageError envuelve err como domain.StorageError marcando si fue una violación de integridad.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	se := &domain.StorageError{Op: op, Err: err}
	if isUndefinedValue(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		se.Constraint = pgErr.ConstraintName
		if se.Constraint == "" {
			se.Constraint = pgErr.Code
		}
	}
	return se
}

// nullString convierte "" en NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
