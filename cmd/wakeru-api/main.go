// -----------------------------------------------------------------------
// wakeru-api: HTTP façade exposing Japanese morphological tokenization
// from the wakeru library (POST /wakeru, GET /health); its per-language
// BM25 indexes are opened at startup but have no HTTP route.
// -----------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wakeru/internal/common"
	"github.com/ternarybob/wakeru/internal/server"
	"github.com/ternarybob/wakeru/internal/wakeru"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string { return fmt.Sprintf("%v", *c) }
func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	showVersion = flag.Bool("version", false, "Print version information")

	config *common.Config
	logger arbor.ILogger
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("wakeru-api version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> ... -> env)
	// 2. Initialize logger
	// 3. Print banner
	// 4. Initialize the wakeru service (dictionary + per-language indexes)
	// 5. Start the HTTP server
	if len(configFiles) == 0 {
		if _, err := os.Stat("wakeru.toml"); err == nil {
			configFiles = append(configFiles, "wakeru.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	applyAPIEnvOverrides(config)

	logger = common.SetupLogger(config)
	common.PrintBanner(config, logger)

	service, werr := wakeru.Init(config)
	if werr != nil {
		logger.Fatal().Err(werr).Msg("Failed to initialize wakeru service")
	}

	shutdownChan := make(chan struct{})

	srv := server.New(config, logger, service)
	srv.SetShutdownChannel(shutdownChan)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Fatal().Str("panic", fmt.Sprintf("%v", r)).Msg("Server goroutine panicked")
			}
		}()
		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	time.Sleep(100 * time.Millisecond)

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info().Msg("Interrupt signal received")
	case <-shutdownChan:
		logger.Info().Msg("Shutdown requested via HTTP")
	}

	common.PrintShutdownBanner(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	common.Stop()
	logger.Info().Msg("Server stopped")
}

// applyAPIEnvOverrides applies the two HTTP-façade-only environment
// variables the original wakeru-api binary reads directly:
// WAKERU_API_BASE_URL (a "host:port" pair, unlike the library's
// WAKERU_SERVER_HOST/WAKERU_SERVER_PORT split) and WAKERU_PRESET_DICT.
// Both are already applied by common.LoadFromFiles via
// applyEnvOverrides; this only handles the base-URL's combined
// "host:port" form, which the library-level override does not parse.
func applyAPIEnvOverrides(config *common.Config) {
	if v := os.Getenv("WAKERU_API_BASE_URL"); v != "" {
		host, portStr, ok := strings.Cut(v, ":")
		if ok {
			if port, err := strconv.Atoi(portStr); err == nil {
				config.Server.Host = host
				config.Server.Port = port
			}
		}
	}
}
