package inventario_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria. memTx serializa las transacciones con un mutex, que es el
// equivalente observable del SELECT FOR UPDATE: dos escrituras concurrentes
// sobre el mismo producto ven cantidades frescas, nunca la misma lectura.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	productos map[string]*entity.Producto
	movs      map[string]*entity.Movimiento
	orden     []string // IDs de movimientos en orden de inserción
}

func newMemStore() *memStore {
	return &memStore{
		productos: make(map[string]*entity.Producto),
		movs:      make(map[string]*entity.Movimiento),
	}
}

func (s *memStore) addProducto(p *entity.Producto) {
	cp := *p
	s.productos[p.ID] = &cp
}

type memTx struct {
	store *memStore
}

func (t *memTx) Run(_ context.Context, fn func(repository.ProductoRepository, repository.MovimientoRepository) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	// Snapshot para simular rollback: los mapas se restauran si fn falla.
	prodSnap := make(map[string]*entity.Producto, len(t.store.productos))
	for k, v := range t.store.productos {
		cp := *v
		prodSnap[k] = &cp
	}
	movSnap := make(map[string]*entity.Movimiento, len(t.store.movs))
	for k, v := range t.store.movs {
		cp := *v
		movSnap[k] = &cp
	}
	ordenSnap := append([]string(nil), t.store.orden...)

	err := fn(&memProductoRepo{store: t.store}, &memMovimientoRepo{store: t.store})
	if err != nil {
		t.store.productos = prodSnap
		t.store.movs = movSnap
		t.store.orden = ordenSnap
	}
	return err
}

type memProductoRepo struct {
	store *memStore
}

func (r *memProductoRepo) Create(p *entity.Producto) error {
	cp := *p
	r.store.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := r.store.productos[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) GetByIDConEliminados(id string) (*entity.Producto, error) {
	p, ok := r.store.productos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	return r.GetByIDConEliminados(id)
}

func (r *memProductoRepo) Update(p *entity.Producto) error {
	cp := *p
	r.store.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) UpdateCantidad(id string, cantidad int) error {
	if p, ok := r.store.productos[id]; ok {
		p.Cantidad = cantidad
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memProductoRepo) UpdateEstado(id string, e estado.Estado) error {
	if p, ok := r.store.productos[id]; ok {
		p.Estado = e
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memProductoRepo) List(filtro repository.ProductoFiltro, limit, offset int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.store.productos {
		if p.DeletedAt != nil {
			continue
		}
		if filtro.Estado != "" && p.Estado != filtro.Estado {
			continue
		}
		if filtro.Busqueda != "" && !strings.Contains(strings.ToLower(p.Nombre), filtro.Busqueda) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductoRepo) CountFiltro(filtro repository.ProductoFiltro) (int, error) {
	list, _ := r.List(filtro, 0, 0)
	return len(list), nil
}

func (r *memProductoRepo) Total() (int, error) {
	return len(r.store.productos), nil
}

func (r *memProductoRepo) ExisteConCategoria(categoriaID string) (bool, error) {
	for _, p := range r.store.productos {
		if p.DeletedAt == nil && p.CategoriaID == categoriaID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductoRepo) ExisteConMarca(marcaID string) (bool, error) {
	for _, p := range r.store.productos {
		if p.DeletedAt == nil && p.MarcaID == marcaID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductoRepo) SoftDelete(id string) error {
	if p, ok := r.store.productos[id]; ok {
		now := time.Now()
		p.DeletedAt = &now
	}
	return nil
}

func (r *memProductoRepo) Restore(id string) error {
	if p, ok := r.store.productos[id]; ok {
		p.DeletedAt = nil
	}
	return nil
}

type memMovimientoRepo struct {
	store *memStore
}

func (r *memMovimientoRepo) Create(m *entity.Movimiento) error {
	cp := *m
	r.store.movs[m.ID] = &cp
	r.store.orden = append(r.store.orden, m.ID)
	return nil
}

func (r *memMovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	m, ok := r.store.movs[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovimientoRepo) List(filtro repository.MovimientoFiltro, limit, offset int) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	// Más recientes primero.
	for i := len(r.store.orden) - 1; i >= 0; i-- {
		m := r.store.movs[r.store.orden[i]]
		if m.DeletedAt != nil {
			continue
		}
		if filtro.ProductoID != "" && m.ProductoID != filtro.ProductoID {
			continue
		}
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memMovimientoRepo) CountFiltro(filtro repository.MovimientoFiltro) (int, error) {
	list, _ := r.List(filtro, 0, 0)
	return len(list), nil
}

func (r *memMovimientoRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.Movimiento, error) {
	return r.List(repository.MovimientoFiltro{ProductoID: productoID}, limit, offset)
}

func (r *memMovimientoRepo) SoftDelete(id string) error {
	if m, ok := r.store.movs[id]; ok {
		now := time.Now()
		m.DeletedAt = &now
	}
	return nil
}

// memCache registra las operaciones para verificar la invalidación del informe.
type memCache struct {
	mu      sync.Mutex
	datos   map[string][]byte
	deletes int
	sets    int
}

func newMemCache() *memCache {
	return &memCache{datos: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.datos[key]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datos[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.datos, key)
	c.deletes++
	return nil
}

// memReporteRepo agrega sobre el mismo store.
type memReporteRepo struct {
	store *memStore
}

func (r *memReporteRepo) TotalProductos() (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, p := range r.store.productos {
		if p.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *memReporteRepo) StockTotal() (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := 0
	for _, p := range r.store.productos {
		if p.DeletedAt == nil {
			total += p.Cantidad
		}
	}
	return total, nil
}

func (r *memReporteRepo) ProductosBajoStock(minimo int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, p := range r.store.productos {
		if p.DeletedAt == nil && p.Cantidad < minimo {
			n++
		}
	}
	return n, nil
}

func (r *memReporteRepo) ResumenPorEstado() ([]repository.EstadoResumen, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	porEstado := make(map[estado.Estado]*repository.EstadoResumen)
	for _, p := range r.store.productos {
		if p.DeletedAt != nil {
			continue
		}
		res, ok := porEstado[p.Estado]
		if !ok {
			res = &repository.EstadoResumen{Estado: p.Estado}
			porEstado[p.Estado] = res
		}
		res.Total++
		res.Stock += p.Cantidad
	}
	out := make([]repository.EstadoResumen, 0, len(porEstado))
	for _, e := range estado.Valores() {
		if res, ok := porEstado[e]; ok {
			out = append(out, *res)
		}
	}
	return out, nil
}

// Verificaciones estáticas de que los dobles satisfacen los puertos.
var (
	_ inventario.TxRunner             = (*memTx)(nil)
	_ inventario.InformeCache         = (*memCache)(nil)
	_ repository.ProductoRepository   = (*memProductoRepo)(nil)
	_ repository.MovimientoRepository = (*memMovimientoRepo)(nil)
	_ repository.ReporteRepository    = (*memReporteRepo)(nil)
)
