package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de unique_violation.
const codigoUniqueViolation = "23505"

// isUniqueViolation detecta choques contra los índices únicos del esquema
// (numero_serie, numero_inventario, email) para traducirlos a error de dominio.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codigoUniqueViolation
	}
	// Drivers intermedios pueden envolver el error sin conservar el tipo.
	return strings.Contains(err.Error(), codigoUniqueViolation)
}
