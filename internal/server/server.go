package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
	"github.com/lakisicaslt/lakisicaslt/internal/render"
)

// cacheItem stores one rendered SVG and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// SVGServer serves the generated SVGs via HTTP, one route per theme.
type SVGServer struct {
	// Per-theme caches use atomic.Pointer for lock-free reads. The SVGs are
	// read frequently by clients but replaced only on refresh, so this beats
	// a RWMutex on the hot path (HTTP GET).
	dark  atomic.Pointer[cacheItem]
	light atomic.Pointer[cacheItem]

	Port string
}

// NewSVGServer creates a new instance of the server.
func NewSVGServer(port string) *SVGServer {
	return &SVGServer{
		Port: port,
	}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *SVGServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleRoot)
	mux.HandleFunc(config.RouteDark, s.themeHandler(&s.dark))
	mux.HandleFunc(config.RouteLight, s.themeHandler(&s.light))

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served content for one theme. Unknown theme
// names are ignored.
func (s *SVGServer) Update(theme string, data []byte) {
	slot := s.slotFor(theme)
	if slot == nil {
		return
	}

	hash := sha256.Sum256(data)
	item := &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	// Atomic store: concurrent readers see either the old or the new
	// complete item, never a partial state.
	slot.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyTheme, theme,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

func (s *SVGServer) slotFor(theme string) *atomic.Pointer[cacheItem] {
	switch theme {
	case render.Dark.Name:
		return &s.dark
	case render.Light.Name:
		return &s.light
	default:
		return nil
	}
}

// handleRoot redirects to the dark rendition so a bare URL shows something.
func (s *SVGServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}
	http.Redirect(w, r, config.RouteDark, http.StatusFound)
}

// themeHandler serves one theme's SVG with HTTP caching support.
func (s *SVGServer) themeHandler(slot *atomic.Pointer[cacheItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// 1. Method Validation
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}

		// 2. Load Data (Atomic / Lock-Free)
		item := slot.Load()

		// 3. Readiness Check
		if item == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}

		// 4. Set Response Headers
		w.Header().Set(config.HeaderContentType, config.MimeSVG)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, item.lastModified)

		// 5. Check Conditional Headers (Browser Caching)
		if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
			if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
				if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
					// If server content is not newer than client cache, return 304.
					if !serverTime.After(clientTime) {
						w.WriteHeader(http.StatusNotModified)
						return
					}
				}
			}
		}

		// 6. Serve Content
		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}
