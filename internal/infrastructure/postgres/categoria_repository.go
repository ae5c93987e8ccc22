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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación de CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoriaRepo) Create(c *entity.Categoria) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO categorias (id, nombre, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Nombre, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría activa por ID.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, created_at, updated_at, deleted_at FROM categorias WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&c.ID, &c.Nombre, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// List lista categorías activas por nombre, con búsqueda opcional sin acentos.
func (r *CategoriaRepo) List(busqueda string, limit, offset int) ([]*entity.Categoria, error) {
	query := `SELECT id, nombre, created_at, updated_at, deleted_at FROM categorias WHERE deleted_at IS NULL`
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
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza el nombre.
func (r *CategoriaRepo) Update(c *entity.Categoria) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categorias SET nombre = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.Nombre, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// SoftDelete marca la categoría como eliminada.
func (r *CategoriaRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categorias SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("soft delete categoria: %w", err)
	}
	return nil
}
