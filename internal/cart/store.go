// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// DefaultSlot is the storage key the cart is serialized under.
const DefaultSlot = "@GoMarketPlace:cart"

// Storage is the slice of the key-value persistence API the cart needs.
// kv.Store satisfies it.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Op names the mutation that produced a published snapshot.
type Op string

const (
	OpLoad      Op = "load"
	OpAdd       Op = "add"
	OpIncrement Op = "increment"
	OpDecrement Op = "decrement"
	OpClear     Op = "clear"
)

// Change describes one published snapshot.
type Change struct {
	ID     string
	Op     Op
	ItemID string
	At     time.Time
}

// Listener receives every published snapshot. Listeners run on the mutation
// goroutine; they must not call mutating Store methods.
type Listener func(products []LineItem, change Change)

type options struct {
	slot            string
	maxTries        uint
	initialInterval time.Duration
	maxElapsed      time.Duration
}

// Option customizes a Store.
type Option func(*options)

// WithSlot sets the storage key. Defaults to DefaultSlot.
func WithSlot(slot string) Option {
	return func(o *options) {
		if slot != "" {
			o.slot = slot
		}
	}
}

// WithRetry sets how many times a storage write is attempted and the first
// backoff interval between attempts.
func WithRetry(maxTries uint, initial time.Duration) Option {
	return func(o *options) {
		if maxTries > 0 {
			o.maxTries = maxTries
		}
		if initial > 0 {
			o.initialInterval = initial
		}
	}
}

// WithMaxElapsed caps the total time spent retrying a single write.
func WithMaxElapsed(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxElapsed = d
		}
	}
}

// Store is the cart state container. The zero value is not usable; call Open.
type Store struct {
	storage Storage
	opts    options

	reqs      chan request
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	mu        sync.RWMutex
	products  []LineItem
	listeners map[int]Listener
	nextID    int
}

type request struct {
	ctx    context.Context
	op     Op
	itemID string
	apply  func([]LineItem) []LineItem
	reply  chan result
}

type result struct {
	products []LineItem
	err      error
}

// Open loads the cart from its slot and starts the mutation loop. The load
// completes before Open returns, so no mutation can run against an unloaded
// cart.
func Open(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	o := options{
		slot:            DefaultSlot,
		maxTries:        4, //nolint:mnd
		initialInterval: 50 * time.Millisecond,
		maxElapsed:      2 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	raw, found, err := storage.Get(ctx, o.slot)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart slot %s: %w", o.slot, err)
	}

	products := []LineItem{}
	if found {
		if products, err = Decode(raw); err != nil {
			return nil, err
		}
		var repaired bool
		if products, repaired = normalize(products); repaired {
			log.Warnf("cart slot %s held duplicate or empty items; repaired on load", o.slot)
		}
	}
	log.Debugf("loaded %d items from slot %s", len(products), o.slot)

	s := &Store{
		storage:   storage,
		opts:      o,
		reqs:      make(chan request),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		products:  products,
		listeners: make(map[int]Listener),
	}
	go s.loop()

	return s, nil
}

// Slot returns the storage key the cart persists under.
func (s *Store) Slot() string {
	return s.opts.slot
}

// Products returns a copy of the latest published cart.
func (s *Store) Products() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.products)
}

// AddToCart bumps the quantity of an existing item with p's id, or appends p
// with quantity 1.
func (s *Store) AddToCart(ctx context.Context, p Product) ([]LineItem, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return s.submit(ctx, OpAdd, p.ID, func(items []LineItem) []LineItem {
		return Add(items, p)
	})
}

// Increment bumps the quantity of id. An unknown id changes nothing but the
// cart is still persisted and republished.
func (s *Store) Increment(ctx context.Context, id string) ([]LineItem, error) {
	return s.submit(ctx, OpIncrement, id, func(items []LineItem) []LineItem {
		return Increment(items, id)
	})
}

// Decrement lowers the quantity of id, removing the item when it reaches 0.
// An unknown id changes nothing but the cart is still persisted and
// republished.
func (s *Store) Decrement(ctx context.Context, id string) ([]LineItem, error) {
	return s.submit(ctx, OpDecrement, id, func(items []LineItem) []LineItem {
		return Decrement(items, id)
	})
}

// Clear empties the cart and persists the empty list.
func (s *Store) Clear(ctx context.Context) ([]LineItem, error) {
	return s.submit(ctx, OpClear, "", func([]LineItem) []LineItem {
		return []LineItem{}
	})
}

// Subscribe registers fn for every future snapshot. The returned func removes
// the registration.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close stops the mutation loop and waits for it to exit. It does not close
// the underlying storage.
func (s *Store) Close() error {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
	return nil
}

func (s *Store) submit(ctx context.Context, op Op, id string, apply func([]LineItem) []LineItem) ([]LineItem, error) {
	req := request{
		ctx:    ctx,
		op:     op,
		itemID: id,
		apply:  apply,
		reply:  make(chan result, 1),
	}

	select {
	case <-s.quit:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case s.reqs <- req:
	}

	res := <-req.reply
	return res.products, res.err
}

func (s *Store) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case req := <-s.reqs:
			req.reply <- s.handle(req)
		}
	}
}

// handle runs on the loop goroutine. It is the only writer of s.products.
func (s *Store) handle(req request) result {
	if err := req.ctx.Err(); err != nil {
		return result{err: err}
	}

	s.mu.RLock()
	current := s.products
	s.mu.RUnlock()

	next := req.apply(current)

	raw, err := Encode(next)
	if err != nil {
		return result{err: err}
	}

	if err := s.persist(req.ctx, raw); err != nil {
		log.WithError(err).Errorf("%s %s not applied", req.op, req.itemID)
		return result{err: err}
	}

	change := Change{
		ID:     uuid.NewString(),
		Op:     req.op,
		ItemID: req.itemID,
		At:     time.Now(),
	}
	log.Debugf("change %s: %s %q -> %d items", change.ID, change.Op, change.ItemID, len(next))
	s.publish(next, change)

	return result{products: clone(next)}
}

func (s *Store) persist(ctx context.Context, raw string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.opts.initialInterval

	_, err := backoff.Retry(ctx,
		func() (struct{}, error) {
			return struct{}{}, s.storage.Set(ctx, s.opts.slot, raw)
		},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(s.opts.maxTries),
		backoff.WithMaxElapsedTime(s.opts.maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warnf("write to slot %s failed, retrying in %s: %v", s.opts.slot, next, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) publish(next []LineItem, change Change) {
	s.mu.Lock()
	s.products = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(clone(next), change)
	}
}
