// Package http exposes the metadata service over HTTP/JSON: handlers, auth
// middleware, and the server loop.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/metastore/internal/logging"
	"github.com/dmitrijs2005/metastore/internal/models"
)

// metadataSvc is the slice of the service layer the handlers need.
type metadataSvc interface {
	GetDocument(ctx context.Context, project string) (*models.Document, error)
	SaveDocument(ctx context.Context, project string, doc *models.Document) (string, error)
	CreateProject(ctx context.Context, project string) error
	ListProjects(ctx context.Context, pageToken string, maxResults int) ([]string, string, error)
}

type HTTPServer struct {
	address     string
	metadata    metadataSvc
	logger      logging.Logger
	jwtSecret   []byte
	tokenMaxAge time.Duration
}

func NewHTTPServer(a string, l logging.Logger, ms metadataSvc, secretKey string, tokenMaxAge time.Duration) (*HTTPServer, error) {
	return &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		metadata:    ms,
		jwtSecret:   []byte(secretKey),
		tokenMaxAge: tokenMaxAge,
	}, nil
}

func (s *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /v1/projects/{project}/metadata", s.requireToken(http.HandlerFunc(s.getMetadata)))
	mux.Handle("PUT /v1/projects/{project}/metadata", s.requireToken(http.HandlerFunc(s.putMetadata)))
	mux.Handle("GET /v1/projects", s.requireToken(http.HandlerFunc(s.listProjects)))
	mux.Handle("POST /v1/projects", s.requireToken(http.HandlerFunc(s.createProject)))
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	return s.countRequests(mux)
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
