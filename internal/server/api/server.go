// Package api exposes the account directory, avatar presigning and the
// public content catalog over HTTP.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bmic/internal/logging"
	"github.com/dmitrijs2005/bmic/internal/server/models"
	"github.com/dmitrijs2005/bmic/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type AccountService interface {
	Login(ctx context.Context) (*services.LoginPayload, error)
	Register(ctx context.Context, email, avatar string) (*models.Account, bool, error)
	AccountByToken(ctx context.Context, token string) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	SetAvatar(ctx context.Context, id, avatar string) error
}

type AvatarService interface {
	Presign(ctx context.Context, contentType, ext string) (*services.PresignedAvatar, error)
}

type HTTPServer struct {
	address  string
	accounts AccountService
	avatars  AvatarService
	logger   logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, as AccountService, avs AvatarService) *HTTPServer {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		accounts: as,
		avatars:  avs,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
