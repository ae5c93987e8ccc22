package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
)

func nuevoProducto(e estado.Estado, cantidad int) *entity.Producto {
	return &entity.Producto{
		ID:               "p-1",
		NumeroInventario: "INV-2026-0001",
		Nombre:           "Portátil de pruebas",
		Cantidad:         cantidad,
		Estado:           e,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CambiarEstado
// ──────────────────────────────────────────────────────────────────────────────

func TestCambiarEstado_TransicionLegal_MutaElAgregado(t *testing.T) {
	p := nuevoProducto(estado.Disponible, 3)

	require.NoError(t, p.CambiarEstado(estado.EnUso))
	assert.Equal(t, estado.EnUso, p.Estado)
	assert.Equal(t, 3, p.Cantidad, "la transición no debe tocar el stock")
}

func TestCambiarEstado_TransicionIlegal_NoMuta(t *testing.T) {
	p := nuevoProducto(estado.EnUso, 3)

	err := p.CambiarEstado(estado.Reservado)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
	assert.Equal(t, estado.EnUso, p.Estado, "un fallo no debe dejar el agregado a medias")
}

func TestCambiarEstado_DesdeBaja_SiempreFalla(t *testing.T) {
	p := nuevoProducto(estado.Baja, 0)
	for _, destino := range estado.Valores() {
		err := p.CambiarEstado(destino)
		assert.ErrorIs(t, err, domain.ErrTransicionInvalida, "baja → %s", destino)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SetCantidad (vía administrativa)
// ──────────────────────────────────────────────────────────────────────────────

func TestSetCantidad_EstadoPermite_Asigna(t *testing.T) {
	p := nuevoProducto(estado.Disponible, 3)

	require.NoError(t, p.SetCantidad(10, false))
	assert.Equal(t, 10, p.Cantidad)
}

func TestSetCantidad_EstadoNoPermite_Falla(t *testing.T) {
	p := nuevoProducto(estado.Mantenimiento, 3)

	err := p.SetCantidad(10, false)
	assert.ErrorIs(t, err, domain.ErrEstadoNoPermite)
	assert.Equal(t, 3, p.Cantidad)
}

func TestSetCantidad_ForzarSaltaRestriccionDeEstado(t *testing.T) {
	p := nuevoProducto(estado.Baja, 3)

	require.NoError(t, p.SetCantidad(0, true))
	assert.Equal(t, 0, p.Cantidad)
}

func TestSetCantidad_NegativaFalla_InclusoForzada(t *testing.T) {
	p := nuevoProducto(estado.Disponible, 3)

	assert.ErrorIs(t, p.SetCantidad(-1, false), domain.ErrCantidadInvalida)
	assert.ErrorIs(t, p.SetCantidad(-1, true), domain.ErrCantidadInvalida)
	assert.Equal(t, 3, p.Cantidad)
}

// ──────────────────────────────────────────────────────────────────────────────
// Disponibilidad y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestEstaDisponible_SoloMiraEstado(t *testing.T) {
	conStock := nuevoProducto(estado.Disponible, 5)
	sinStock := nuevoProducto(estado.Disponible, 0)

	assert.True(t, conStock.EstaDisponible())
	assert.True(t, sinStock.EstaDisponible(), "la variante laxa ignora el stock")
	assert.False(t, nuevoProducto(estado.EnUso, 5).EstaDisponible())
}

func TestEstaDisponibleEstricto_ExigeStockPositivo(t *testing.T) {
	assert.True(t, nuevoProducto(estado.Disponible, 1).EstaDisponibleEstricto())
	assert.False(t, nuevoProducto(estado.Disponible, 0).EstaDisponibleEstricto())
	assert.False(t, nuevoProducto(estado.Reservado, 5).EstaDisponibleEstricto())
}

func TestEstaDisponiblePara_DelegaEnContexto(t *testing.T) {
	reservado := nuevoProducto(estado.Reservado, 2)

	assert.True(t, reservado.EstaDisponiblePara(estado.ContextoVenta))
	assert.False(t, reservado.EstaDisponiblePara(estado.ContextoPrestamo))
}

func TestBajoStock(t *testing.T) {
	p := nuevoProducto(estado.Disponible, 4)

	assert.True(t, p.BajoStock(5))
	assert.False(t, p.BajoStock(4), "el umbral es estricto: cantidad < mínimo")
}
