package service

import "sync"

// ProductLocks serializes the check-then-act sequence per product. Two
// concurrent reservation attempts for the same product take turns, so neither
// can commit on the basis of an availability check the other has already
// invalidated. Operations on different products never contend.
type ProductLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewProductLocks() *ProductLocks {
	return &ProductLocks{locks: make(map[uint]*sync.Mutex)}
}

func (p *ProductLocks) Lock(productID uint) {
	p.get(productID).Lock()
}

func (p *ProductLocks) Unlock(productID uint) {
	p.get(productID).Unlock()
}

func (p *ProductLocks) get(productID uint) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		p.locks[productID] = m
	}
	return m
}
