package booking

import "sync"

// phoneLocker serializes message handling per phone number. Messages
// from different phones proceed concurrently; two interleaved messages
// from the same phone would otherwise corrupt the step/slot-list pair.
type phoneLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (p *phoneLocker) get(phone string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.locks == nil {
		p.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := p.locks[phone]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[phone] = lock
	}
	return lock
}
