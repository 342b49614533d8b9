// Web server for go-islands: renders the home page and serves the client bundle
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"

	"github.com/go-while/go-islands/internal/config"
	"github.com/go-while/go-islands/internal/logger"
	"github.com/go-while/go-islands/internal/web"
)

var (
	// command-line flags
	configDir    string
	webport      int
	webssl       bool
	webcertFile  string
	webkeyFile   string
	staticDir    string
	templatesDir string
	displayName  string
	slowDelay    time.Duration
	logLevel     string
	logPretty    bool
	pprofAddr    string
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&configDir, "config", "", "directory containing config.yaml (default: . and ./config)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 3000)")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&staticDir, "static", "", "directory served under /dist (default: ./dist, embedded bundle if missing)")
	flag.StringVar(&templatesDir, "templates", "", "directory with base.html/home.html/error.html (default: embedded)")
	flag.StringVar(&displayName, "name", "", "display name rendered on the home page (default: Toto)")
	flag.DurationVar(&slowDelay, "slowdelay", 0, "delay before the slow component shows its content (default: 3s)")
	flag.StringVar(&logLevel, "loglevel", "", "log level: debug, info, warn, error")
	flag.BoolVar(&logPretty, "logpretty", false, "human readable console logs")
	flag.StringVar(&pprofAddr, "pprof", "", "serve pprof on this address, e.g. :51111")
	flag.Parse()

	mainConfig, err := config.Load(configDir)
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("[WEB]: Error loading config")
	}

	// Override config with command-line flags if provided
	webConfig := &mainConfig.Web
	if webport > 0 {
		webConfig.ListenPort = webport
	}
	if webssl {
		webConfig.SSL = true
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
	}
	if staticDir != "" {
		webConfig.StaticDir = staticDir
	}
	if templatesDir != "" {
		webConfig.TemplatesDir = templatesDir
	}
	if displayName != "" {
		webConfig.DisplayName = displayName
	}
	if slowDelay > 0 {
		webConfig.SlowDelay = slowDelay
	}
	if logLevel != "" {
		mainConfig.Log.Level = logLevel
	}
	if logPretty {
		mainConfig.Log.Pretty = true
	}
	if pprofAddr != "" {
		mainConfig.PprofAddr = pprofAddr
	}

	log := logger.New(logger.Config{Level: mainConfig.Log.Level, Pretty: mainConfig.Log.Pretty})
	logger.SetGlobalLogger(log)

	if err := mainConfig.Validate(); err != nil {
		log.Fatal().Err(err).Msg("[WEB]: Invalid configuration")
	}
	log.Info().
		Str("version", appVersion).
		Int("port", webConfig.ListenPort).
		Bool("ssl", webConfig.SSL).
		Str("static_dir", webConfig.StaticDir).
		Str("display_name", webConfig.DisplayName).
		Dur("slow_delay", webConfig.SlowDelay).
		Msg("[WEB]: Starting go-islands web server")

	if mainConfig.PprofAddr != "" {
		profiler := prof.NewProf()
		go profiler.PprofWeb(mainConfig.PprofAddr)
		profiler.StartMemProfile(5*time.Minute, 30*time.Second)
		log.Info().Str("addr", mainConfig.PprofAddr).Msg("[WEB]: pprof enabled")
	}

	server, err := web.NewServer(webConfig, log)
	if err != nil {
		log.Fatal().Err(err).Msg("[WEB]: Failed to create web server")
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Info().Msg("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatal().Err(err).Msg("[WEB]: Failed to start web server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("[WEB]: Shutdown did not complete cleanly")
		return
	}
	log.Info().Msg("[WEB]: Graceful shutdown completed")
}
