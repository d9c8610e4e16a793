package main

import (
	"context"
	"fmt"
	"io"

	"github.com/peterh/liner"

	"github.com/diyabansal-1605/full-stack-project/internal/api"
	"github.com/diyabansal-1605/full-stack-project/internal/auth"
	"github.com/diyabansal-1605/full-stack-project/internal/cart"
	"github.com/diyabansal-1605/full-stack-project/internal/catalog"
	"github.com/diyabansal-1605/full-stack-project/internal/config"
	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/events"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
	"github.com/diyabansal-1605/full-stack-project/internal/orders"
	"github.com/diyabansal-1605/full-stack-project/internal/paywidget"
	"github.com/diyabansal-1605/full-stack-project/internal/session"
	"github.com/diyabansal-1605/full-stack-project/internal/storage"
	"github.com/diyabansal-1605/full-stack-project/internal/stub"
)

// app holds everything one process shares: the session, the client and the
// long lived views.
type app struct {
	cfg *config.Config
	out io.Writer

	creds     storage.CredentialStore
	sessions  *session.Store
	client    *api.Client
	notifier  notice.Notifier
	history   *nav.History
	publisher events.Publisher
	widget    *paywidget.Terminal

	auth    *auth.View
	catalog *catalog.Catalog
	search  *catalog.Search
	cart    *cart.View
	orders  *orders.View

	// line is set while the repl runs.
	line *liner.State
}

func newApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, stubPay bool) (*app, error) {
	creds, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	sessions := session.NewStore(creds)
	sessions.Restore(ctx)

	client := api.New(api.Config{
		BaseURL:            cfg.APIBaseURL,
		Timeout:            cfg.RequestTimeout,
		BreakerMaxFailures: cfg.Breaker.MaxFailures,
		BreakerOpenTimeout: cfg.Breaker.OpenTimeout,
	}, sessions)

	notifier := notice.NewWriter(out)
	history := nav.NewHistory(nav.Home)

	widget := paywidget.New(in, out)
	if stubPay {
		secret := cfg.Stub.PaymentSecret
		widget.Signer = func(orderID, paymentID string) string {
			return stub.SignPayment(secret, orderID, paymentID)
		}
	}

	a := &app{
		cfg:       cfg,
		out:       out,
		creds:     creds,
		sessions:  sessions,
		client:    client,
		notifier:  notifier,
		history:   history,
		publisher: events.New(cfg.Events),
		widget:    widget,
		auth:      auth.NewView(client, sessions, notifier, history),
		catalog:   catalog.New(client, sessions, notifier, history),
		search:    catalog.NewSearch(client),
		cart:      cart.NewView(client, notifier),
		orders:    orders.NewView(client),
	}

	sessions.Subscribe(func(s domain.Session) {
		if s.Authenticated() {
			logger.L().WithField("user_id", s.Identity.ID).Debug("session changed")
			return
		}
		logger.L().Debug("session cleared")
	})

	return a, nil
}

func (a *app) Close() error {
	if err := a.publisher.Close(); err != nil {
		logger.L().WithError(err).Warn("close event publisher failed")
	}
	return a.creds.Close()
}
