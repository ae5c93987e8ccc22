package inventario_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
	"github.com/jhoicas/inventario-activos/pkg/logger"
)

func setupService(t *testing.T) (*inventario.Service, *memStore, *memCache) {
	t.Helper()
	store := newMemStore()
	cache := newMemCache()
	tx := &memTx{store: store}
	ledger := inventario.NewLedger(tx, cache, logger.Nop())
	svc := inventario.NewService(
		ledger, tx,
		&memProductoRepo{store: store},
		&memReporteRepo{store: store},
		cache,
		inventario.Config{StockMinimo: 5, InformeTTL: time.Minute},
		logger.Nop(),
	)
	return svc, store, cache
}

// ──────────────────────────────────────────────────────────────────────────────
// AjustarStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAjustarStock_DeltaPositivo_RegistraEntrada(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := svc.AjustarStock(context.Background(), "p-1", 3, "Ajuste de conteo")
	require.NoError(t, err)

	assert.Equal(t, entity.TipoEntrada, res.Movimiento.Tipo)
	assert.Equal(t, 3, res.Movimiento.Cantidad)
	assert.Equal(t, 13, res.CantidadActual)
}

func TestAjustarStock_DeltaNegativo_RegistraSalida(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := svc.AjustarStock(context.Background(), "p-1", -4, "Merma")
	require.NoError(t, err)

	assert.Equal(t, entity.TipoSalida, res.Movimiento.Tipo)
	assert.Equal(t, 4, res.Movimiento.Cantidad, "la cantidad registrada es el valor absoluto")
	assert.Equal(t, 6, res.CantidadActual)
}

func TestAjustarStock_DeltaCero_Falla(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	_, err := svc.AjustarStock(context.Background(), "p-1", 0, "")
	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
}

// ──────────────────────────────────────────────────────────────────────────────
// CambiarEstado
// ──────────────────────────────────────────────────────────────────────────────

func TestCambiarEstado_SinAjuste_SoloTransiciona(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	require.NoError(t, svc.CambiarEstado(context.Background(), "p-1", estado.EnUso, "", 0))

	assert.Equal(t, estado.EnUso, store.productos["p-1"].Estado)
	assert.Equal(t, 10, store.productos["p-1"].Cantidad)
	assert.Empty(t, store.movs, "sin motivo ni cantidad no debe registrarse movimiento")
}

func TestCambiarEstado_ConMotivoYCantidad_RegistraAjusteAtomico(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	require.NoError(t, svc.CambiarEstado(context.Background(), "p-1", estado.EnUso, "Préstamo a soporte", -2))

	assert.Equal(t, estado.EnUso, store.productos["p-1"].Estado)
	assert.Equal(t, 8, store.productos["p-1"].Cantidad)
	require.Len(t, store.movs, 1)
	for _, m := range store.movs {
		assert.Equal(t, entity.TipoSalida, m.Tipo)
		assert.Equal(t, 2, m.Cantidad)
		assert.Contains(t, m.Motivo, "Cambio de estado", "el motivo debe describir la transición")
		assert.Contains(t, m.Motivo, "Préstamo a soporte")
	}
}

func TestCambiarEstado_MotivoConCantidadCero_FallaYRevierte(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	// Un motivo exige su ajuste: cantidad cero no es un ajuste válido y la
	// transición cae con él.
	err := svc.CambiarEstado(context.Background(), "p-1", estado.Mantenimiento, "Revisión anual", 0)
	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)

	assert.Equal(t, estado.Disponible, store.productos["p-1"].Estado)
	assert.Equal(t, 10, store.productos["p-1"].Cantidad)
	assert.Empty(t, store.movs)
}

func TestCambiarEstado_TransicionIlegal_NoDejaNada(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.EnUso, 10)

	err := svc.CambiarEstado(context.Background(), "p-1", estado.Reservado, "con ajuste", 1)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	assert.Equal(t, estado.EnUso, store.productos["p-1"].Estado)
	assert.Equal(t, 10, store.productos["p-1"].Cantidad)
	assert.Empty(t, store.movs)
}

func TestCambiarEstado_AjusteFalla_RevierteLaTransicion(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 1)

	// La transición es legal, pero la salida de 5 excede el stock: nada queda.
	err := svc.CambiarEstado(context.Background(), "p-1", estado.EnUso, "Salida masiva", -5)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	assert.Equal(t, estado.Disponible, store.productos["p-1"].Estado,
		"la transición debe revertirse junto con el ajuste")
	assert.Equal(t, 1, store.productos["p-1"].Cantidad)
	assert.Empty(t, store.movs)
}

func TestCambiarEstado_EstadoDestinoInvalido_Falla(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 1)

	err := svc.CambiarEstado(context.Background(), "p-1", estado.Estado("vendido"), "", 0)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

// ──────────────────────────────────────────────────────────────────────────────
// AsignarCantidad (vía administrativa)
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignarCantidad_NoDejaMovimiento(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	require.NoError(t, svc.AsignarCantidad(context.Background(), "p-1", 25, false))

	assert.Equal(t, 25, store.productos["p-1"].Cantidad)
	assert.Empty(t, store.movs, "la vía administrativa no registra en el libro")
}

func TestAsignarCantidad_EstadoNoPermite_FallaSinForzar(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Mantenimiento, 10)

	err := svc.AsignarCantidad(context.Background(), "p-1", 25, false)
	assert.ErrorIs(t, err, domain.ErrEstadoNoPermite)

	require.NoError(t, svc.AsignarCantidad(context.Background(), "p-1", 25, true),
		"forzar debe saltarse la restricción de estado")
	assert.Equal(t, 25, store.productos["p-1"].Cantidad)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminar / Restaurar
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminarProducto_SoftDelete(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	require.NoError(t, svc.EliminarProducto(context.Background(), "p-1"))
	assert.NotNil(t, store.productos["p-1"].DeletedAt)
}

func TestEliminarProducto_EstadoFinal_Falla(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Baja, 0)

	err := svc.EliminarProducto(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrEstadoTerminal)
	assert.Nil(t, store.productos["p-1"].DeletedAt)
}

func TestRestaurarProducto_RevierteElSoftDelete(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	require.NoError(t, svc.EliminarProducto(context.Background(), "p-1"))
	require.NoError(t, svc.RestaurarProducto(context.Background(), "p-1"))
	assert.Nil(t, store.productos["p-1"].DeletedAt)
}

func TestRestaurarProducto_NoEliminado_EsNoOp(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	require.NoError(t, svc.RestaurarProducto(context.Background(), "p-1"))
	assert.Nil(t, store.productos["p-1"].DeletedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Informe de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerarInformeStock_Agrega(t *testing.T) {
	svc, store, _ := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)
	sembrarProducto(store, "p-2", estado.Disponible, 2) // bajo el mínimo de 5
	sembrarProducto(store, "p-3", estado.EnUso, 7)

	informe, err := svc.GenerarInformeStock(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, informe.TotalProductos)
	assert.Equal(t, 19, informe.StockTotal)
	assert.Equal(t, 1, informe.ProductosBajoStock)
	assert.Equal(t, 5, informe.StockMinimo)
	assert.False(t, informe.GeneradoEn.IsZero())

	porEstado := make(map[estado.Estado]int)
	for _, res := range informe.PorEstado {
		porEstado[res.Estado] = res.Total
	}
	assert.Equal(t, 2, porEstado[estado.Disponible])
	assert.Equal(t, 1, porEstado[estado.EnUso])
}

func TestGenerarInformeStock_SegundaLecturaVieneDelCache(t *testing.T) {
	svc, store, cache := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	primero, err := svc.GenerarInformeStock(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets, "la primera generación debe cachearse")

	// Mutación directa del store sin pasar por el libro: el caché aún vigente
	// debe servir el valor anterior.
	store.productos["p-1"].Cantidad = 999

	segundo, err := svc.GenerarInformeStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, primero.StockTotal, segundo.StockTotal, "debe servirse el informe cacheado")
}

func TestGenerarInformeStock_EscrituraInvalidaElCache(t *testing.T) {
	svc, store, cache := setupService(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	_, err := svc.GenerarInformeStock(context.Background())
	require.NoError(t, err)

	_, err = svc.AjustarStock(context.Background(), "p-1", 5, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cache.deletes, 1)

	informe, err := svc.GenerarInformeStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, informe.StockTotal, "tras la invalidación el informe se regenera fresco")
}

func TestGenerarInformeStock_SinCache_Funciona(t *testing.T) {
	store := newMemStore()
	tx := &memTx{store: store}
	ledger := inventario.NewLedger(tx, nil, logger.Nop())
	svc := inventario.NewService(
		ledger, tx,
		&memProductoRepo{store: store},
		&memReporteRepo{store: store},
		nil,
		inventario.Config{},
		logger.Nop(),
	)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	informe, err := svc.GenerarInformeStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, informe.StockTotal)
}
