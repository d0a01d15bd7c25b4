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

	"github.com/gin-gonic/gin"

	"dirserve/internal/config"
	"dirserve/internal/server"
	"dirserve/internal/tree"
	"dirserve/internal/util"
)

func main() {
	var (
		configPath string
		root       string
		addr       string
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	flag.StringVar(&root, "root", "", "Directory to serve (overrides config and "+config.RootEnv+")")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config)")
	flag.IntVar(&verbose, "verbose", 0, "Log verbosity between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 0, "--verbose (shorthand)")
	flag.Parse()

	util.InitializeLogger(config.DefaultLogLvl)
	logger := util.GetLogger("main")

	cfg := config.NewDefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.NewConfigFromFile(configPath); err != nil {
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config")
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.Merge(cliOverride(root, addr, verbose))
	util.InitializeLogger(cfg.LogLvl)
	logger = util.GetLogger("main")

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	roots := &rootOpener{dir: cfg.Root}
	defer roots.close()
	if err := roots.activate(srv); err != nil {
		logger.Fatal().Err(err).Str("root", cfg.Root).Msg("Failed to open root")
	}

	httpSrv := &http.Server{
		Addr:     cfg.ListenAddr,
		Handler:  srv.Handler(),
		ErrorLog: util.NewLogLogger("http", util.WarnLevel),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Str("root", cfg.Root).Msg("Listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve")
			}
			return
		case sig := <-signalChan:
			if sig == syscall.SIGHUP {
				if err := roots.activate(srv); err != nil {
					logger.Error().Err(err).Msg("Failed to re-activate")
				}
				continue
			}

			logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
			if err := httpSrv.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("Graceful shutdown failed")
			}
			cancel()

			logger.Info().Interface("stats", srv.Stats()).Msg("Server stopped")
			return
		}
	}
}

func cliOverride(root, addr string, verbose int) *config.ConfigOverride {
	override := &config.ConfigOverride{}
	if root != "" {
		override.Root = &root
	}
	if addr != "" {
		override.ListenAddr = &addr
	}
	if verbose != 0 {
		override.LogLvl = &verbose
	}
	return override
}

// rootOpener hands the server a freshly opened root each time it is
// (re-)activated, keeping earlier roots open until exit since in-flight
// requests may still hold them.
type rootOpener struct {
	dir    string
	opened []*tree.OSRoot
}

func (o *rootOpener) activate(srv *server.Server) error {
	if srv.Enabled() {
		return nil
	}
	root, err := tree.OpenOS(o.dir)
	if err != nil {
		return err
	}
	o.opened = append(o.opened, root)
	srv.Activate(root)
	return nil
}

func (o *rootOpener) close() {
	for _, root := range o.opened {
		root.Close()
	}
}
