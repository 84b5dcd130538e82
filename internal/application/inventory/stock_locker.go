package inventory

import (
	"slices"
	"sync"
)

// StockLocker serializa las mutaciones de stock por producto: un mutex por ID.
// Lock adquiere los mutex en orden ascendente de ID, así dos operaciones que
// comparten productos no pueden bloquearse mutuamente.
type StockLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewStockLocker construye el locker vacío.
func NewStockLocker() *StockLocker {
	return &StockLocker{locks: make(map[int64]*sync.Mutex)}
}

// Lock bloquea los productos indicados (duplicados permitidos) y devuelve la función de liberación.
// La función de liberación es idempotente.
func (l *StockLocker) Lock(productIDs ...int64) (unlock func()) {
	ids := slices.Clone(productIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].Unlock()
			}
		})
	}
}

func (l *StockLocker) get(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
