package credentials

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// ErrNoCredential is returned when the pool is empty.
var ErrNoCredential = errors.New("no API credential configured")

// Provider picks an API credential for the next upstream call.
type Provider interface {
	Pick() (string, error)
}

// Random picks a credential uniformly at random from the pool.
type Random struct {
	mu   sync.Mutex
	pool []string
	rng  *rand.Rand
}

func NewRandom(pool []string, seed int64) *Random {
	return &Random{
		pool: append([]string(nil), pool...),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewRandomFromTime seeds the picker from the wall clock.
func NewRandomFromTime(pool []string) *Random {
	return NewRandom(pool, time.Now().UnixNano())
}

func (r *Random) Pick() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pool) == 0 {
		return "", ErrNoCredential
	}
	return r.pool[r.rng.Intn(len(r.pool))], nil
}

// RoundRobin cycles through the pool in order.
type RoundRobin struct {
	pool []string
	next atomic.Uint64
}

func NewRoundRobin(pool []string) *RoundRobin {
	return &RoundRobin{pool: append([]string(nil), pool...)}
}

func (r *RoundRobin) Pick() (string, error) {
	if len(r.pool) == 0 {
		return "", ErrNoCredential
	}
	n := r.next.Add(1) - 1
	return r.pool[n%uint64(len(r.pool))], nil
}
