package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"incidentdesk/internal/incident"
	"incidentdesk/internal/taxonomy"
	"incidentdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

// Archiver keeps a copy of generated report files.
type Archiver interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte, now time.Time) (string, error)
	ObjectURL(key string) string
}

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	incidents *incident.Service
	taxonomy  *taxonomy.Taxonomy
	archive   Archiver
	templates *template.Template

	cookie *securecookie.SecureCookie
	now    func() time.Time

	server *http.Server
}

// New builds the HTTP service. archive may be nil, in which case reports are
// only downloaded.
func New(
	config *types.Config,
	logger *logrus.Logger,
	incidents *incident.Service,
	archive Archiver,
) (*Service, error) {
	mux := flow.New()

	cookie, err := newSecureCookie(config)
	if err != nil {
		return nil, err
	}

	s := &Service{
		logger:    logger,
		config:    config,
		incidents: incidents,
		taxonomy:  incidents.Taxonomy(),
		archive:   archive,
		cookie:    cookie,
		now:       time.Now,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func newSecureCookie(config *types.Config) (*securecookie.SecureCookie, error) {
	var hashKey, blockKey []byte
	var err error

	if config.CookieHashKey != "" {
		hashKey, err = base64.StdEncoding.DecodeString(config.CookieHashKey)
		if err != nil {
			return nil, fmt.Errorf("decode COOKIE_HASH_KEY: %w", err)
		}
	}
	if config.CookieBlockKey != "" {
		blockKey, err = base64.StdEncoding.DecodeString(config.CookieBlockKey)
		if err != nil {
			return nil, fmt.Errorf("decode COOKIE_BLOCK_KEY: %w", err)
		}
	}

	// Flash messages only live for one redirect, random keys are fine when
	// none are configured.
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}

	return securecookie.New(hashKey, blockKey), nil
}

// Handler exposes the router, mostly for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleDashboard, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/incidents/new", s.handleGetNewIncident, http.MethodGet)
	r.HandleFunc("/incidents", s.handlePostIncident, http.MethodPost)
	r.HandleFunc("/incidents", s.handleListIncidents, http.MethodGet)
	r.HandleFunc("/incidents/:id|^[0-9]+$", s.handleIncidentDetail, http.MethodGet)

	r.HandleFunc("/reports", s.handleReports, http.MethodGet)

	r.HandleFunc("/actions", s.handleActions, http.MethodGet)
	r.HandleFunc("/actions/:id|^[0-9]+$", s.handlePostAction, http.MethodPost)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"contains": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"join": strings.Join,
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
