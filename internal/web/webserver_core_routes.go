// Package web provides the HTTP server and web interface for go-islands
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/go-while/go-islands/internal/components"
	"github.com/go-while/go-islands/internal/config"
	"github.com/go-while/go-islands/internal/metrics"
)

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.WebConfig
	StartTime time.Time // Track server start time for uptime calculations

	log         zerolog.Logger
	templatesFS fs.FS
	clock       components.Clock
	httpServer  *http.Server

	done      chan struct{} // closed on shutdown to release component streams
	closeOnce sync.Once
}

// TemplateData represents common template data
type TemplateData struct {
	Title       string
	Lang        string
	CurrentTime string
	Port        int
	AppVersion  string
}

// HomePageData represents data for the home page
type HomePageData struct {
	TemplateData
	Name   string
	RootID string
	Props  string
	Hello  template.HTML
	Slow   template.HTML
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig, logger zerolog.Logger) (*WebServer, error) {
	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Configure Gin to trust reverse proxy headers
	// Set trusted proxies for common reverse proxy setups (nginx, etc.)
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	templatesFS, err := templatesFileSystem(webconfig.TemplatesDir)
	if err != nil {
		return nil, err
	}

	server := &WebServer{
		Router:      router,
		Config:      webconfig,
		log:         logger.With().Str("component", "web").Logger(),
		templatesFS: templatesFS,
		clock:       components.RealClock,
		done:        make(chan struct{}),
	}

	if webconfig.AccessLog == "apache" {
		router.Use(server.ApacheLogFormat())
	} else {
		router.Use(server.AccessLogMiddleware())
	}
	router.Use(secure.New(secureConfig))
	router.Use(server.ReverseProxyMiddleware())
	router.Use(server.MetricsMiddleware())

	if err := server.setupRoutes(); err != nil {
		return nil, err
	}
	server.httpServer = server.newHTTPServer()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() error {
	// Static files first (highest priority)
	if err := s.mountDist("/dist"); err != nil {
		return err
	}

	s.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.Router.GET("/", s.homePage)

	s.Router.GET("/components/slow", s.slowComponentStream)
	s.Router.GET("/components/hello", s.helloComponent)

	s.Router.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page introuvable", c.Request.URL.Path)
	})
	return nil
}

// Handler returns the router wrapped with CORS handling for the client bundle
func (s *WebServer) Handler() http.Handler {
	origins := s.Config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		MaxAge:         300,
	})(s.Router)
}

func (s *WebServer) newHTTPServer() *http.Server {
	// component streams stay open for the slow delay
	writeTimeout := 15 * time.Second
	if need := s.Config.SlowDelay + 5*time.Second; need > writeTimeout {
		writeTimeout = need
	}
	return &http.Server{
		Addr:              ":" + strconv.Itoa(s.Config.ListenPort),
		Handler:           s.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// Start starts the web server with SSL support if configured
func (s *WebServer) Start() error {
	addr := s.httpServer.Addr
	s.StartTime = time.Now() // Set the start time for uptime calculations

	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		s.log.Info().Str("addr", addr).Msg("Starting HTTPS server")
		return s.httpServer.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	}
	s.log.Info().Str("addr", addr).Msgf("Serveur sur http://localhost%s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown releases open component streams and stops the HTTP server
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })
	return s.httpServer.Shutdown(ctx)
}

// ReverseProxyMiddleware handles X-Forwarded headers when running behind a reverse proxy
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = host
		}

		c.Next()
	}
}

// AccessLogMiddleware logs one structured line per request
func (s *WebServer) AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		level := zerolog.InfoLevel
		if path == "/ping" || path == "/metrics" {
			level = zerolog.DebugLevel
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}

		s.log.WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// ApacheLogFormat writes access lines in Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: s.log,
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
				param.ClientIP,
				param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.BodySize,
				param.Request.Referer(),
				param.Request.UserAgent(),
			)
		},
	})
}

// MetricsMiddleware records request latency per matched route
func (s *WebServer) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		} else if strings.HasPrefix(route, "/dist/") {
			route = "/dist"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
