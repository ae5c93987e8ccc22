package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
)

var _ repository.MarcaRepository = (*MarcaRepo)(nil)

// MarcaRepo implementación de MarcaRepository sobre PostgreSQL.
type MarcaRepo struct {
	q Querier
}

// NewMarcaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMarcaRepository(q Querier) *MarcaRepo {
	return &MarcaRepo{q: q}
}

// Create persiste una marca.
func (r *MarcaRepo) Create(m *entity.Marca) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO marcas (id, nombre, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Nombre, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert marca: %w", err)
	}
	return nil
}

// GetByID obtiene una marca activa por ID.
func (r *MarcaRepo) GetByID(id string) (*entity.Marca, error) {
	var m entity.Marca
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, created_at, updated_at, deleted_at FROM marcas WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&m.ID, &m.Nombre, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get marca: %w", err)
	}
	return &m, nil
}

// List lista marcas activas por nombre, con búsqueda opcional sin acentos.
func (r *MarcaRepo) List(busqueda string, limit, offset int) ([]*entity.Marca, error) {
	query := `SELECT id, nombre, created_at, updated_at, deleted_at FROM marcas WHERE deleted_at IS NULL`
	var args []any
	if busqueda != "" {
		query += ` AND unaccent(lower(nombre)) LIKE $1 ORDER BY nombre LIMIT $2 OFFSET $3`
		args = []any{"%" + busqueda + "%", limit, offset}
	} else {
		query += ` ORDER BY nombre LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list marcas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Marca
	for rows.Next() {
		var m entity.Marca
		if err := rows.Scan(&m.ID, &m.Nombre, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan marca: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza el nombre.
func (r *MarcaRepo) Update(m *entity.Marca) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE marcas SET nombre = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`,
		m.ID, m.Nombre, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update marca: %w", err)
	}
	return nil
}

// SoftDelete marca la fila como eliminada.
func (r *MarcaRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE marcas SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("soft delete marca: %w", err)
	}
	return nil
}
