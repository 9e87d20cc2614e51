// Package memory implementa los puertos de repositorio sobre mapas en
// memoria, con la misma semántica de escrituras condicionales que la
// implementación Postgres (decrementos con precondición, puertas de
// conversión de un solo ganador). Lo usan los tests de los casos de uso.
package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// Store contiene todo el estado en memoria. Las entidades se guardan por
// valor: cada lectura/escritura copia, nunca se comparte un puntero vivo.
type Store struct {
	mu sync.Mutex

	tenants    map[string]entity.Tenant
	users      map[string]entity.User
	items      map[string]entity.Item
	customers  map[string]entity.Customer
	suppliers  map[string]entity.Supplier
	sales      map[string]entity.Sale
	purchases  map[string]entity.Purchase
	quotations map[string]entity.Quotation
	orders     map[string]entity.PurchaseOrder

	customerPayments []entity.CustomerPayment
	supplierPayments []entity.SupplierPayment
	adjustments      []entity.StockAdjustment
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		tenants:    make(map[string]entity.Tenant),
		users:      make(map[string]entity.User),
		items:      make(map[string]entity.Item),
		customers:  make(map[string]entity.Customer),
		suppliers:  make(map[string]entity.Supplier),
		sales:      make(map[string]entity.Sale),
		purchases:  make(map[string]entity.Purchase),
		quotations: make(map[string]entity.Quotation),
		orders:     make(map[string]entity.PurchaseOrder),
	}
}

// snapshot captura el estado completo para poder restaurarlo si la
// función transaccional falla.
type snapshot struct {
	tenants          map[string]entity.Tenant
	users            map[string]entity.User
	items            map[string]entity.Item
	customers        map[string]entity.Customer
	suppliers        map[string]entity.Supplier
	sales            map[string]entity.Sale
	purchases        map[string]entity.Purchase
	quotations       map[string]entity.Quotation
	orders           map[string]entity.PurchaseOrder
	customerPayments []entity.CustomerPayment
	supplierPayments []entity.SupplierPayment
	adjustments      []entity.StockAdjustment
}

func cloneMap[V any](m map[string]V) map[string]V {
	cp := make(map[string]V, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func cloneSlice[V any](s []V) []V {
	return append([]V(nil), s...)
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		tenants:          cloneMap(s.tenants),
		users:            cloneMap(s.users),
		items:            cloneMap(s.items),
		customers:        cloneMap(s.customers),
		suppliers:        cloneMap(s.suppliers),
		sales:            cloneMap(s.sales),
		purchases:        cloneMap(s.purchases),
		quotations:       cloneMap(s.quotations),
		orders:           cloneMap(s.orders),
		customerPayments: cloneSlice(s.customerPayments),
		supplierPayments: cloneSlice(s.supplierPayments),
		adjustments:      cloneSlice(s.adjustments),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = snap.tenants
	s.users = snap.users
	s.items = snap.items
	s.customers = snap.customers
	s.suppliers = snap.suppliers
	s.sales = snap.sales
	s.purchases = snap.purchases
	s.quotations = snap.quotations
	s.orders = snap.orders
	s.customerPayments = snap.customerPayments
	s.supplierPayments = snap.supplierPayments
	s.adjustments = snap.adjustments
}

// ── Accesores de conveniencia para los tests ─────────────────────────────

// PutItem inserta o reemplaza un ítem directamente.
func (s *Store) PutItem(item entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// Item devuelve el ítem por id.
func (s *Store) Item(id string) (entity.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

// PutCustomer inserta o reemplaza un cliente directamente.
func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

// Customer devuelve el cliente por id.
func (s *Store) Customer(id string) (entity.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	return c, ok
}

// PutSupplier inserta o reemplaza un proveedor directamente.
func (s *Store) PutSupplier(sp entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sp.ID] = sp
}

// Supplier devuelve el proveedor por id.
func (s *Store) Supplier(id string) (entity.Supplier, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.suppliers[id]
	return sp, ok
}

// PutQuotation inserta o reemplaza una cotización directamente.
func (s *Store) PutQuotation(q entity.Quotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotations[q.ID] = q
}

// Quotation devuelve la cotización por id.
func (s *Store) Quotation(id string) (entity.Quotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotations[id]
	return q, ok
}

// PutOrder inserta o reemplaza una orden de compra directamente.
func (s *Store) PutOrder(o entity.PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// Order devuelve la orden por id.
func (s *Store) Order(id string) (entity.PurchaseOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

// Sales devuelve todas las ventas almacenadas.
func (s *Store) Sales() []entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Sale, 0, len(s.sales))
	for _, v := range s.sales {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Purchases devuelve todas las compras almacenadas.
func (s *Store) Purchases() []entity.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Purchase, 0, len(s.purchases))
	for _, v := range s.purchases {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CustomerPayments devuelve todos los abonos de clientes registrados.
func (s *Store) CustomerPayments() []entity.CustomerPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.customerPayments)
}

// SupplierPayments devuelve todos los pagos a proveedores registrados.
func (s *Store) SupplierPayments() []entity.SupplierPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.supplierPayments)
}

// Adjustments devuelve todos los ajustes de stock registrados.
func (s *Store) Adjustments() []entity.StockAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.adjustments)
}
