package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/bmic/internal/client/client"
	"github.com/dmitrijs2005/bmic/internal/client/config"
	"github.com/dmitrijs2005/bmic/internal/client/models"
	"github.com/dmitrijs2005/bmic/internal/client/repositories/kv"
	"github.com/dmitrijs2005/bmic/internal/client/services"
	"github.com/dmitrijs2005/bmic/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ fail atomic.Bool }

func (f *fakePinger) Ping(context.Context) error {
	if f.fail.Load() {
		return client.ErrUnavailable
	}
	return nil
}

type fakeUploader struct {
	url  string
	err  error
	path string
}

func (f *fakeUploader) Upload(_ context.Context, path string) (string, error) {
	f.path = path
	return f.url, f.err
}

type testApp struct {
	*App
	out      *bytes.Buffer
	uploader *fakeUploader
	pinger   *fakePinger
}

// newTestApp builds an App around an in-memory store with no remote, so
// every sign-in takes the local path. input feeds prompts.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	stubTerminal(t, false, nil, errors.New("no tty in tests"))

	store := services.NewSessionStore(nil, logging.Nop())
	repo := kv.NewFileRepository(filepath.Join(t.TempDir(), "session.json"))

	var out bytes.Buffer
	up := &fakeUploader{}
	pg := &fakePinger{}
	a := &App{
		config:    &config.Config{OnlineCheckInterval: 10 * time.Millisecond},
		store:     store,
		persister: services.NewPersister(store, repo, nil),
		lookup:    pg,
		avatars:   up,
		log:       logging.Nop(),
		in:        bufio.NewScanner(strings.NewReader(input)),
		out:       &out,
		now:       func() time.Time { return time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC) },
	}
	return &testApp{App: a, out: &out, uploader: up, pinger: pg}
}

func (ta *testApp) seed(accs ...models.Account) {
	var cur *models.Account
	if len(accs) > 0 {
		cur = &accs[0]
	}
	ta.store.Hydrate(models.Snapshot{Accounts: accs, CurrentUser: cur})
}

// ---- auth ----

func TestSignUp_WithArgAndPrompt(t *testing.T) {
	ta := newTestApp(t, "pw1\nb@x.com\npw2\n")
	ctx := context.Background()

	require.NoError(t, ta.SignUp(ctx, []string{"a@x.com"}))
	require.NoError(t, ta.SignUp(ctx, nil))

	st := ta.store.State()
	require.Len(t, st.Accounts, 2)
	assert.Equal(t, "b@x.com", st.CurrentUser.Email)
	assert.False(t, st.IsSignUp)
	assert.Contains(t, ta.out.String(), "Welcome, a@x.com!")
}

func TestSignUp_Duplicate(t *testing.T) {
	ta := newTestApp(t, "pw\npw\n")
	ctx := context.Background()

	require.NoError(t, ta.SignUp(ctx, []string{"a@x.com"}))
	assert.ErrorIs(t, ta.SignUp(ctx, []string{"A@X.com"}), errEmailTaken)
	assert.Len(t, ta.store.State().Accounts, 1)
}

func TestSignUp_EmptyInput(t *testing.T) {
	ta := newTestApp(t, "\n")
	assert.ErrorIs(t, ta.SignUp(context.Background(), []string{"a@x.com"}), errEmptyPassword)

	ta = newTestApp(t, "   \n")
	assert.ErrorIs(t, ta.SignUp(context.Background(), nil), errEmptyEmail)
}

func TestSignIn_LocalFallback(t *testing.T) {
	ta := newTestApp(t, "wrong\npw\n")
	ta.store.Hydrate(models.Snapshot{Accounts: []models.Account{{ID: "1", Email: "a@x.com", Password: "pw"}}})
	ctx := context.Background()

	assert.ErrorIs(t, ta.SignIn(ctx, []string{"a@x.com"}), errSignInFailed)
	assert.False(t, ta.isSignedIn())

	require.NoError(t, ta.SignIn(ctx, []string{"A@X.COM"}))
	assert.True(t, ta.isSignedIn())
	assert.Contains(t, ta.out.String(), "Signed in as a@x.com")
}

func TestGuestAndSignOut(t *testing.T) {
	ta := newTestApp(t, "")
	ta.seed(models.Account{ID: "1", Email: "a@x.com"})
	ctx := context.Background()

	require.NoError(t, ta.Guest(ctx))
	st := ta.store.State()
	assert.True(t, st.IsGuest)
	assert.Nil(t, st.CurrentUser)
	assert.Equal(t, "(guest )", ta.getStatus())

	require.NoError(t, ta.SignOut(ctx))
	assert.False(t, ta.store.State().IsGuest)
}

func TestWhoAmI(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, ta.WhoAmI(ctx))
	assert.Contains(t, ta.out.String(), "not signed in")

	ta.seed(models.Account{ID: "id-1", Email: "a@x.com", CreatedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)})
	ta.out.Reset()
	require.NoError(t, ta.WhoAmI(ctx))
	out := ta.out.String()
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "id-1")
	assert.Contains(t, out, "2024-01-02 03:04")
	assert.Contains(t, out, "(none)")
}

// ---- accounts ----

func TestAccounts(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, ta.Accounts(ctx))
	assert.Contains(t, ta.out.String(), "No accounts yet")

	ta.seed(
		models.Account{ID: "1", Email: "a@x.com", Avatar: "file:///a.png"},
		models.Account{ID: "2", Email: "b@x.com"},
	)
	ta.out.Reset()
	require.NoError(t, ta.Accounts(ctx))

	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "EMAIL")
	assert.True(t, strings.HasPrefix(lines[1], "*"))
	assert.Contains(t, lines[1], "file:///a.png")
	assert.Contains(t, lines[2], "b@x.com")
}

func TestAvatar(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()

	assert.ErrorIs(t, ta.Avatar(ctx, []string{"file:///x.png"}), errNotSignedIn)

	ta.seed(models.Account{ID: "1", Email: "a@x.com"})
	assert.Error(t, ta.Avatar(ctx, nil))
	require.NoError(t, ta.Avatar(ctx, []string{"file:///x.png"}))

	st := ta.store.State()
	assert.Equal(t, "file:///x.png", st.CurrentUser.Avatar)
	assert.Equal(t, "file:///x.png", st.Accounts[0].Avatar)
}

func TestUploadAvatar(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()
	ta.seed(models.Account{ID: "1", Email: "a@x.com"})

	ta.uploader.url = "https://cdn.example/avatars/k.png"
	require.NoError(t, ta.UploadAvatar(ctx, []string{"/tmp/me.png"}))
	assert.Equal(t, "/tmp/me.png", ta.uploader.path)
	assert.Equal(t, "https://cdn.example/avatars/k.png", ta.store.State().CurrentUser.Avatar)

	ta.uploader.err = client.ErrUnavailable
	assert.ErrorIs(t, ta.UploadAvatar(ctx, []string{"/tmp/other.png"}), client.ErrUnavailable)
	assert.Equal(t, "https://cdn.example/avatars/k.png", ta.store.State().CurrentUser.Avatar)
}

func TestDelete(t *testing.T) {
	ta := newTestApp(t, "n\ny\ny\n")
	ctx := context.Background()
	ta.seed(models.Account{ID: "1", Email: "a@x.com"}, models.Account{ID: "2", Email: "b@x.com"})

	// declined
	require.NoError(t, ta.Delete(ctx, nil))
	assert.Len(t, ta.store.State().Accounts, 2)

	// current account
	require.NoError(t, ta.Delete(ctx, nil))
	st := ta.store.State()
	assert.Nil(t, st.CurrentUser)
	assert.Len(t, st.Accounts, 1)

	// unknown id
	assert.ErrorIs(t, ta.Delete(ctx, []string{"missing"}), errUnknownAccount)

	// no current user and no id
	assert.ErrorIs(t, ta.Delete(ctx, nil), errNotSignedIn)
}

// ---- catalog ----

func TestShow(t *testing.T) {
	tests := []struct {
		topic string
		want  []string
	}{
		{"problems", []string{"The Problem", "Quantum Threat to Crypto"}},
		{"solutions", []string{"Our Solution", "AI Orchestration Layer"}},
		{"benefits", []string{"Staking Rewards"}},
		{"invest", []string{"€40M", "Funding Raised"}},
		{"tokenomics", []string{"Pre Sale", "1,500", "50%", "Total", "2,500", "100%"}},
		{"roadmap", []string{"Phase 2: Testnet Expansion Q2 2025 - Q3 2025 <- now", "NFT-based access live"}},
		{"info", []string{"BMIC", "Version:"}},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			ta := newTestApp(t, "")
			require.NoError(t, ta.Show(context.Background(), tt.topic))
			for _, w := range tt.want {
				assert.Contains(t, ta.out.String(), w)
			}
		})
	}

	ta := newTestApp(t, "")
	assert.Error(t, ta.Show(context.Background(), "weather"))
}

func TestCalendar(t *testing.T) {
	ctx := context.Background()

	ta := newTestApp(t, "")
	require.NoError(t, ta.Calendar(ctx, nil))
	assert.Contains(t, ta.out.String(), "May 2025 | Phase 2: Testnet Expansion")
	assert.Contains(t, ta.out.String(), "20*")

	ta = newTestApp(t, "")
	require.NoError(t, ta.Calendar(ctx, []string{"2026"}))
	assert.Equal(t, 12, strings.Count(ta.out.String(), "Sun Mon Tue Wed Thu Fri Sat"))

	ta = newTestApp(t, "")
	require.NoError(t, ta.Calendar(ctx, []string{"2024", "10"}))
	assert.Contains(t, ta.out.String(), "October 2024 | Phase 1: Foundation")

	assert.Error(t, ta.Calendar(ctx, []string{"next"}))
	assert.Error(t, ta.Calendar(ctx, []string{"2024", "13"}))
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "0", formatCoins(0))
	assert.Equal(t, "300", formatCoins(300))
	assert.Equal(t, "1,500", formatCoins(1500))
	assert.Equal(t, "1,234,567", formatCoins(1234567))
	assert.Equal(t, "-2,000", formatCoins(-2000))
}

// ---- status & connectivity ----

func TestGetStatus(t *testing.T) {
	ta := newTestApp(t, "")
	assert.Equal(t, "", ta.getStatus())

	ta.setMode(ModeOnline)
	assert.Equal(t, "(online)", ta.getStatus())

	ta.seed(models.Account{ID: "1", Email: "alice@x.com"})
	assert.Equal(t, "(alice@x.com online)", ta.getStatus())
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	ta := newTestApp(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ta.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return ta.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	ta.pinger.fail.Store(true)
	assert.Eventually(t, func() bool { return ta.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

// ---- wiring ----

func TestNewApp_BackendsRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	remote := srv.URL
	srv.Close()

	for _, backend := range []string{config.StorageSQLite, config.StorageFile} {
		t.Run(backend, func(t *testing.T) {
			stubTerminal(t, false, nil, nil)
			ctx := context.Background()

			var cfg config.Config
			cfg.LoadDefaults()
			cfg.RemoteURL = remote
			cfg.StorageBackend = backend
			cfg.StoragePath = filepath.Join(t.TempDir(), "nested", "bmic.store")

			a, err := NewApp(ctx, &cfg, nil)
			require.NoError(t, err)
			a.in = scan("pw\n")
			a.out = &bytes.Buffer{}
			require.NoError(t, a.SignUp(ctx, []string{"a@x.com"}))
			a.Close(ctx)

			b, err := NewApp(ctx, &cfg, nil)
			require.NoError(t, err)
			defer b.Close(ctx)
			b.in = scan("pw\n")
			b.out = &bytes.Buffer{}

			st := b.store.State()
			require.Len(t, st.Accounts, 1)
			require.NotNil(t, st.CurrentUser)

			require.NoError(t, b.SignOut(ctx))
			require.NoError(t, b.SignIn(ctx, []string{"a@x.com"}), "unreachable remote falls back to the restored account")
		})
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.StorageBackend = "tape"

	_, err := NewApp(context.Background(), &cfg, nil)
	require.Error(t, err)
}
