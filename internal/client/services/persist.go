package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dmitrijs2005/bmic/internal/client/models"
	"github.com/dmitrijs2005/bmic/internal/client/repositories/kv"
	"github.com/dmitrijs2005/bmic/internal/logging"
)

// StorageKey is where the session snapshot lives in the key-value storage.
const StorageKey = "auth-storage"

const defaultWriteTimeout = 5 * time.Second

// Persister mirrors the store's {accounts, currentUser} into a kv.Repository.
// Writes happen on a background goroutine; while one is in flight, further
// changes collapse into a single pending snapshot. Write failures are
// logged and otherwise ignored.
type Persister struct {
	store SessionStore
	repo  kv.Repository
	log   logging.Logger

	writeTimeout time.Duration

	mu          sync.Mutex
	pending     *State
	lastVersion uint64

	unsubscribe func()
	wake        chan struct{}
	stop        chan struct{}
	done        chan struct{}
	startOnce   sync.Once
	stopOnce    sync.Once
}

func NewPersister(store SessionStore, repo kv.Repository, log logging.Logger) *Persister {
	if log == nil {
		log = logging.Nop()
	}
	return &Persister{
		store:        store,
		repo:         repo,
		log:          log.With("module", "persister"),
		writeTimeout: defaultWriteTimeout,
		wake:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Restore loads the saved snapshot into the store. A missing key is a first
// launch; a broken one is logged and the store keeps its empty defaults.
func (p *Persister) Restore(ctx context.Context) {
	b, err := p.repo.Get(ctx, StorageKey)
	if err != nil {
		p.log.Warn(ctx, "failed to read saved session", "error", err)
		return
	}
	if b == nil {
		p.log.Debug(ctx, "no saved session")
		return
	}

	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		p.log.Warn(ctx, "failed to decode saved session", "error", err)
		return
	}

	p.store.Hydrate(snap)
	p.log.Info(ctx, "session restored", "accounts", len(snap.Accounts), "signed_in", snap.CurrentUser != nil)
}

// Start subscribes to the store and launches the writer.
func (p *Persister) Start() {
	p.startOnce.Do(func() {
		unsub := p.store.Subscribe(p.onChange)
		p.mu.Lock()
		p.unsubscribe = unsub
		p.mu.Unlock()
		go p.run()
	})
}

// Close stops listening and waits for the last pending snapshot to be
// written, or for ctx to expire. It is safe to call concurrently with Start.
func (p *Persister) Close(ctx context.Context) error {
	p.startOnce.Do(func() { close(p.done) })

	p.mu.Lock()
	unsub := p.unsubscribe
	p.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	p.stopOnce.Do(func() { close(p.stop) })

	if unsub == nil {
		return nil
	}
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Persister) onChange(st State) {
	p.mu.Lock()
	if st.Version <= p.lastVersion {
		p.mu.Unlock()
		return
	}
	p.lastVersion = st.Version
	p.pending = &st
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.flush()
		case <-p.stop:
			p.flush()
			return
		}
	}
}

func (p *Persister) flush() {
	p.mu.Lock()
	st := p.pending
	p.pending = nil
	p.mu.Unlock()

	if st == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	b, err := json.Marshal(st.Snapshot())
	if err != nil {
		p.log.Warn(ctx, "failed to encode session", "error", err)
		return
	}
	if err := p.repo.Set(ctx, StorageKey, b); err != nil {
		p.log.Warn(ctx, "failed to persist session", "error", err)
		return
	}
	p.log.Debug(ctx, "session persisted", "version", st.Version)
}
