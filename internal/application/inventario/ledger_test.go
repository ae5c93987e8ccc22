package inventario_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
	"github.com/jhoicas/inventario-activos/pkg/logger"
)

func setupLedger(t *testing.T) (*inventario.Ledger, *memStore, *memCache) {
	t.Helper()
	store := newMemStore()
	cache := newMemCache()
	ledger := inventario.NewLedger(&memTx{store: store}, cache, logger.Nop())
	return ledger, store, cache
}

func sembrarProducto(store *memStore, id string, e estado.Estado, cantidad int) {
	store.addProducto(&entity.Producto{
		ID:               id,
		NumeroInventario: "INV-2026-0001",
		Nombre:           "Producto de pruebas",
		Cantidad:         cantidad,
		Estado:           e,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Registrar
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrar_Entrada_SumaStockYCreaMovimiento(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := ledger.Registrar(context.Background(), "p-1", entity.TipoEntrada, 5, "Compra")
	require.NoError(t, err)

	assert.Equal(t, 15, res.CantidadActual)
	assert.Equal(t, entity.TipoEntrada, res.Movimiento.Tipo)
	assert.Equal(t, 5, res.Movimiento.Cantidad)
	assert.Equal(t, "Compra", res.Movimiento.Motivo)
	assert.NotEmpty(t, res.Movimiento.ID)
	assert.Equal(t, 15, store.productos["p-1"].Cantidad, "el stock persistido debe coincidir")
}

func TestRegistrar_Salida_RestaStock(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 4, "Entrega")
	require.NoError(t, err)

	assert.Equal(t, 6, res.CantidadActual)
	assert.Equal(t, 6, store.productos["p-1"].Cantidad)
}

func TestRegistrar_SalidaExacta_DejaStockEnCero(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 5)

	res, err := ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.CantidadActual)
}

func TestRegistrar_SalidaSinStock_FallaYNoDejaRastro(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 3)

	_, err := ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 4, "")
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	assert.Equal(t, 3, store.productos["p-1"].Cantidad, "el stock no debe cambiar")
	assert.Empty(t, store.movs, "no debe quedar movimiento huérfano")
}

func TestRegistrar_CantidadNoPositiva_Falla(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 3)

	for _, cantidad := range []int{0, -1} {
		_, err := ledger.Registrar(context.Background(), "p-1", entity.TipoEntrada, cantidad, "")
		assert.ErrorIs(t, err, domain.ErrCantidadInvalida, "cantidad %d", cantidad)
	}
	assert.Empty(t, store.movs)
}

func TestRegistrar_TipoDesconocido_Falla(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 3)

	_, err := ledger.Registrar(context.Background(), "p-1", entity.TipoMovimiento("ajuste"), 1, "")
	assert.ErrorIs(t, err, domain.ErrTipoInvalido)
}

func TestRegistrar_ProductoInexistente_Falla(t *testing.T) {
	ledger, _, _ := setupLedger(t)

	_, err := ledger.Registrar(context.Background(), "no-existe", entity.TipoEntrada, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrar_InvalidaElInformeCacheado(t *testing.T) {
	ledger, store, cache := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)
	cache.datos["informe_stock"] = []byte(`{}`)

	_, err := ledger.Registrar(context.Background(), "p-1", entity.TipoEntrada, 1, "")
	require.NoError(t, err)

	assert.NotContains(t, cache.datos, "informe_stock", "toda escritura invalida el informe")
}

// ──────────────────────────────────────────────────────────────────────────────
// Revertir
// ──────────────────────────────────────────────────────────────────────────────

func TestRevertir_Salida_DevuelveElStock(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 4, "")
	require.NoError(t, err)
	require.Equal(t, 6, res.CantidadActual)

	require.NoError(t, ledger.Revertir(context.Background(), res.Movimiento.ID))

	assert.Equal(t, 10, store.productos["p-1"].Cantidad, "revertir una salida restituye el stock")
	assert.NotNil(t, store.movs[res.Movimiento.ID].DeletedAt, "el movimiento queda marcado como revertido")
}

func TestRevertir_Entrada_RestaElStock(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := ledger.Registrar(context.Background(), "p-1", entity.TipoEntrada, 5, "")
	require.NoError(t, err)

	require.NoError(t, ledger.Revertir(context.Background(), res.Movimiento.ID))
	assert.Equal(t, 10, store.productos["p-1"].Cantidad)
}

func TestRevertir_EntradaQueDejariaNegativo_Falla(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 0)

	entrada, err := ledger.Registrar(context.Background(), "p-1", entity.TipoEntrada, 5, "")
	require.NoError(t, err)
	_, err = ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 3, "")
	require.NoError(t, err)

	// Quedan 2 unidades; revertir la entrada de 5 dejaría -3.
	err = ledger.Revertir(context.Background(), entrada.Movimiento.ID)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	assert.Equal(t, 2, store.productos["p-1"].Cantidad, "el stock debe quedar intacto")
	assert.Nil(t, store.movs[entrada.Movimiento.ID].DeletedAt, "la entrada no debe quedar revertida")
}

func TestRevertir_DosVeces_FallaLaSegunda(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 2, "")
	require.NoError(t, err)

	require.NoError(t, ledger.Revertir(context.Background(), res.Movimiento.ID))
	err = ledger.Revertir(context.Background(), res.Movimiento.ID)
	assert.ErrorIs(t, err, domain.ErrMovimientoRevertido)

	assert.Equal(t, 10, store.productos["p-1"].Cantidad, "el segundo intento no debe duplicar el ajuste")
}

func TestRevertir_MovimientoInexistente_Falla(t *testing.T) {
	ledger, _, _ := setupLedger(t)

	err := ledger.Revertir(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevertir_ProductoEliminado_SigueSiendoValido(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 10)

	res, err := ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 2, "")
	require.NoError(t, err)

	repo := &memProductoRepo{store: store}
	require.NoError(t, repo.SoftDelete("p-1"))

	require.NoError(t, ledger.Revertir(context.Background(), res.Movimiento.ID),
		"la reversión es una corrección de auditoría y aplica también a productos eliminados")
	assert.Equal(t, 10, store.productos["p-1"].Cantidad)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos salidas que compiten por el mismo stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrar_SalidasConcurrentes_SoloUnaGana(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 5)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Registrar(context.Background(), "p-1", entity.TipoSalida, 5, "")
		}(i)
	}
	wg.Wait()

	exitos, fallos := 0, 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
			fallos++
		}
	}
	assert.Equal(t, 1, exitos, "exactamente una salida debe confirmarse")
	assert.Equal(t, 1, fallos, "la otra debe fallar por stock insuficiente")
	assert.Equal(t, 0, store.productos["p-1"].Cantidad, "el stock nunca puede quedar negativo")
}

func TestRegistrar_EntradasConcurrentes_NoSePierdenActualizaciones(t *testing.T) {
	ledger, store, _ := setupLedger(t)
	sembrarProducto(store, "p-1", estado.Disponible, 0)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Registrar(context.Background(), "p-1", entity.TipoEntrada, 1, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, store.productos["p-1"].Cantidad,
		"cada entrada debe verse reflejada: sin lost updates")
	assert.Len(t, store.movs, n)
}
