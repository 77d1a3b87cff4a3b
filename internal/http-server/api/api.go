// Package api serves the admin HTTP API: market price management, the
// weekly summary lookup, key issuance and the dashboard WebSocket feed.
package api

import (
	"FarmBot/internal/config"
	"FarmBot/internal/http-server/handlers/errors"
	"FarmBot/internal/http-server/handlers/key"
	"FarmBot/internal/http-server/handlers/price"
	"FarmBot/internal/http-server/handlers/summary"
	"FarmBot/internal/http-server/middleware/authenticate"
	"FarmBot/internal/http-server/middleware/timeout"
	"FarmBot/internal/lib/sl"
	"FarmBot/internal/ws"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Store is the slice of the farm repository the handlers read and
// write.
type Store interface {
	price.Core
	summary.Core
}

// Auth owns API keys: it backs the authenticate middleware, the key
// handler and the WebSocket token check.
type Auth interface {
	authenticate.Authenticate
	key.Core
}

// wsAuth adapts Auth to the ws.Authenticator shape.
type wsAuth struct {
	auth Auth
}

func (a wsAuth) ValidateToken(token string) (string, error) {
	k, err := a.auth.AuthenticateByToken(token)
	if err != nil {
		return "", err
	}
	return k.Name, nil
}

// New builds the router and serves it. Blocks.
func New(conf *config.Config, log *slog.Logger, store Store, auth Auth, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	// The feed authenticates with a query token during the upgrade, so
	// it sits outside the header middleware.
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, wsAuth{auth: auth}, log, w, r)
	})

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(authenticate.New(log, auth))

		v1.Route("/prices", func(r chi.Router) {
			r.Get("/", price.ListPrices(log, store))
			r.Post("/", price.AddPrice(log, store, hub))
		})
		v1.Route("/summary", func(r chi.Router) {
			r.Get("/{telegram_id}", summary.GetSummary(log, store))
		})
		v1.Route("/key", func(r chi.Router) {
			r.Post("/new", key.Generate(log, auth))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
