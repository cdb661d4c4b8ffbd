package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lzjever/mbos-items/internal/api/middleware"
	"github.com/lzjever/mbos-items/internal/store"
)

const defaultReadyTimeout = 2 * time.Second

type API struct {
	queries      *store.Queries
	log          *zap.Logger
	readyTimeout time.Duration
}

// NewAPI builds the handlers on top of db, which is a pool in production
// and a pgxmock pool in tests.
func NewAPI(db store.DBTX, readyTimeout time.Duration, log *zap.Logger) *API {
	if readyTimeout <= 0 {
		readyTimeout = defaultReadyTimeout
	}
	return &API{
		queries:      store.New(db),
		log:          log,
		readyTimeout: readyTimeout,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger(a.log))
	r.Use(middleware.Recoverer(a.log))

	r.NotFound(a.NotFound)
	r.MethodNotAllowed(a.NotFound)

	// Health
	r.Get("/health", a.HealthHandler)
	r.Get("/ready", a.ReadyHandler)

	// Items
	r.Get("/get-all", a.ListItems)
	r.Get("/get/{id}", a.GetItem)
	r.Post("/add/{name}", a.CreateItem)
	r.Put("/update/{id}", a.UpdateItem)
	r.Delete("/delete/{id}", a.DeleteItem)

	return r
}

// NotFound answers unmatched routes with an empty 404.
func (a *API) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

// pathParam returns the decoded value of a URL parameter. chi matches on
// the escaped path when the request carries one.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// rawSegment returns the last segment of the request path exactly as sent,
// percent-escapes included.
func rawSegment(r *http.Request) string {
	p := r.URL.EscapedPath()
	return p[strings.LastIndexByte(p, '/')+1:]
}
