// Package services contains application services for the BMIC client.
// This file defines the session store: the locally known accounts, the
// current session and the sign-in/sign-up/sign-out operations, including
// the remote-then-local sign-in policy.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bmic/internal/client/client"
	"github.com/dmitrijs2005/bmic/internal/client/models"
	"github.com/dmitrijs2005/bmic/internal/common"
	"github.com/dmitrijs2005/bmic/internal/logging"
	"github.com/google/uuid"
)

// Seams for tests.
var (
	timeNow = time.Now
	newID   = uuid.NewString
)

// RemoteLookup fetches the canonical account document. Errors wrapping
// client.ErrRejected mean the remote answered and refused; any other error
// means it could not be reached.
type RemoteLookup interface {
	Lookup(ctx context.Context) (*client.LookupPayload, error)
}

// State is a point-in-time copy of the session. Version grows with every
// change, so observers can drop copies older than one they already handled.
type State struct {
	IsSignUp    bool
	IsGuest     bool
	Accounts    []models.Account
	CurrentUser *models.Account
	Version     uint64
}

// Snapshot returns the persisted subset of s.
func (s State) Snapshot() models.Snapshot {
	return models.Snapshot{
		Accounts:    models.CloneAccounts(s.Accounts),
		CurrentUser: s.CurrentUser.Clone(),
	}
}

// Listener is notified with a fresh State after every change.
type Listener func(State)

// SessionStore is the single source of truth for who is signed in.
//
// Contract:
//   - SignIn consults the remote first. A resolved remote account becomes
//     current (and is added to Accounts if its email is new). A rejection
//     fails without looking at local accounts. An unreachable remote falls
//     back to a local email (case-insensitive) + password match.
//   - SignUp fails on an existing email, otherwise adds and selects a new
//     account.
//   - No method returns an error; failures are false or a no-op.
//
// Implementations are safe for concurrent use.
type SessionStore interface {
	SignIn(ctx context.Context, email, password string) bool
	SignUp(email, password string) bool
	SignOut()
	EmailExists(email string) bool
	UpdateAvatar(uri string)
	DeleteAccount(id string) bool
	SetGuest(isGuest bool)
	SetSignUpMode(isSignUp bool)
	SetCurrentUser(user *models.Account)

	State() State
	Subscribe(l Listener) (unsubscribe func())
	Hydrate(snap models.Snapshot)
}

type sessionStore struct {
	remote RemoteLookup
	log    logging.Logger

	mu          sync.Mutex
	isSignUp    bool
	isGuest     bool
	accounts    []models.Account
	currentUser *models.Account
	version     uint64

	lmu       sync.Mutex
	listeners map[uint64]Listener
	nextLID   uint64
}

// NewSessionStore creates an empty store. A nil remote behaves as an
// unreachable one, so every sign-in goes through the local fallback.
func NewSessionStore(remote RemoteLookup, log logging.Logger) SessionStore {
	if log == nil {
		log = logging.Nop()
	}
	return &sessionStore{
		remote:    remote,
		log:       log.With("module", "session_store"),
		accounts:  []models.Account{},
		listeners: make(map[uint64]Listener),
	}
}

// RemoteOutcome tags the result of asking the remote about a sign-in.
type RemoteOutcome int

const (
	OutcomeUnreachable RemoteOutcome = iota
	OutcomeRejected
	OutcomeResolved
)

func (o RemoteOutcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unreachable"
	}
}

// resolveRemote asks the remote about email. The account is only set for
// OutcomeResolved; it carries the caller's password since the remote never
// returns credentials.
func (s *sessionStore) resolveRemote(ctx context.Context, email, password string) (RemoteOutcome, *models.Account) {
	if s.remote == nil {
		return OutcomeUnreachable, nil
	}

	p, err := s.remote.Lookup(ctx)
	if err != nil {
		if errors.Is(err, client.ErrRejected) {
			s.log.Info(ctx, "remote rejected sign in", "email", email, "error", err)
			return OutcomeRejected, nil
		}
		s.log.Warn(ctx, "remote lookup failed", "email", email, "error", err)
		return OutcomeUnreachable, nil
	}

	if p == nil || p.Token == "" || strings.TrimSpace(p.User.Email) == "" {
		s.log.Info(ctx, "remote payload has no user or token", "email", email)
		return OutcomeRejected, nil
	}
	if !common.SameEmail(p.User.Email, email) {
		s.log.Info(ctx, "remote account does not match", "email", email)
		return OutcomeRejected, nil
	}

	id := string(p.User.ID)
	if id == "" {
		id = newID()
	}
	return OutcomeResolved, &models.Account{
		ID:        id,
		Email:     p.User.Email,
		Password:  password,
		CreatedAt: timeNow(),
		Avatar:    p.User.Avatar,
	}
}

func (s *sessionStore) SignIn(ctx context.Context, email, password string) bool {
	outcome, remoteAcc := s.resolveRemote(ctx, email, password)
	s.log.Debug(ctx, "sign in", "email", email, "outcome", outcome.String())

	switch outcome {
	case OutcomeResolved:
		s.mutate(func() bool {
			if s.indexByEmail(remoteAcc.Email) < 0 {
				s.accounts = append(s.accounts, *remoteAcc)
			}
			s.setCurrent(remoteAcc)
			return true
		})
		return true

	case OutcomeRejected:
		return false

	default:
		return s.mutate(func() bool {
			for i := range s.accounts {
				a := &s.accounts[i]
				if common.SameEmail(a.Email, email) && a.Password == password {
					s.setCurrent(a)
					return true
				}
			}
			return false
		})
	}
}

func (s *sessionStore) SignUp(email, password string) bool {
	return s.mutate(func() bool {
		if s.indexByEmail(email) >= 0 {
			return false
		}
		acc := models.Account{
			ID:        newID(),
			Email:     email,
			Password:  password,
			CreatedAt: timeNow(),
		}
		s.accounts = append(s.accounts, acc)
		s.setCurrent(&acc)
		return true
	})
}

func (s *sessionStore) SignOut() {
	s.mutate(func() bool {
		s.currentUser = nil
		s.isGuest = false
		return true
	})
}

func (s *sessionStore) EmailExists(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexByEmail(email) >= 0
}

func (s *sessionStore) UpdateAvatar(uri string) {
	s.mutate(func() bool {
		if s.currentUser == nil {
			return false
		}
		s.currentUser.Avatar = uri
		if i := s.indexByID(s.currentUser.ID); i >= 0 {
			s.accounts[i].Avatar = uri
		}
		return true
	})
}

func (s *sessionStore) DeleteAccount(id string) bool {
	return s.mutate(func() bool {
		i := s.indexByID(id)
		if i < 0 {
			return false
		}
		s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
		if s.currentUser != nil && s.currentUser.ID == id {
			s.currentUser = nil
		}
		return true
	})
}

func (s *sessionStore) SetGuest(isGuest bool) {
	s.mutate(func() bool { s.isGuest = isGuest; return true })
}

func (s *sessionStore) SetSignUpMode(isSignUp bool) {
	s.mutate(func() bool { s.isSignUp = isSignUp; return true })
}

func (s *sessionStore) SetCurrentUser(user *models.Account) {
	s.mutate(func() bool {
		s.setCurrent(user)
		s.isGuest = false
		return true
	})
}

func (s *sessionStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *sessionStore) Subscribe(l Listener) func() {
	s.lmu.Lock()
	id := s.nextLID
	s.nextLID++
	s.listeners[id] = l
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

// Hydrate replaces accounts and the current user with a restored snapshot.
// Listeners are not notified: the data came from storage in the first place.
func (s *sessionStore) Hydrate(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = models.CloneAccounts(snap.Accounts)
	s.currentUser = snap.CurrentUser.Clone()
	s.version++
}

// setCurrent stores a copy of user, never an alias of an accounts entry.
// isGuest is left alone. Must be called with mu held.
func (s *sessionStore) setCurrent(user *models.Account) {
	s.currentUser = user.Clone()
}

func (s *sessionStore) indexByEmail(email string) int {
	for i := range s.accounts {
		if common.SameEmail(s.accounts[i].Email, email) {
			return i
		}
	}
	return -1
}

func (s *sessionStore) indexByID(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *sessionStore) stateLocked() State {
	return State{
		IsSignUp:    s.isSignUp,
		IsGuest:     s.isGuest,
		Accounts:    models.CloneAccounts(s.accounts),
		CurrentUser: s.currentUser.Clone(),
		Version:     s.version,
	}
}

// mutate runs fn under the lock. When fn reports a change, listeners are
// notified outside the lock, so a listener may call back into the store.
func (s *sessionStore) mutate(fn func() bool) bool {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	s.version++
	st := s.stateLocked()
	s.mu.Unlock()

	s.lmu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.lmu.Unlock()

	for _, l := range ls {
		c := st
		c.Accounts = models.CloneAccounts(st.Accounts)
		c.CurrentUser = st.CurrentUser.Clone()
		l(c)
	}
	return true
}
