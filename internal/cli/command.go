package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"pong-web/internal/config"
	"pong-web/internal/handler"
	"pong-web/internal/metrics"
	"pong-web/internal/repository"
	"pong-web/internal/server"
	"pong-web/internal/service"
	"syscall"

	"github.com/spf13/cobra"
)

// Variant selects which routes a binary exposes
type Variant struct {
	Name     string
	Short    string
	SaveData bool
}

var (
	// StaticOnly serves the index page and static assets
	StaticOnly = Variant{Name: "web", Short: "Serve the pong page and its static assets", SaveData: false}
	// Full additionally accepts POST /save-data
	Full = Variant{Name: "api", Short: "Serve the pong page, its static assets and the save-data endpoint", SaveData: true}
)

// NewCommand creates the root command for a variant
func NewCommand(variant Variant) *cobra.Command {
	var envFile string
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           variant.Name,
		Short:         variant.Short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			applyFlags(cmd, &loaded, cfg)
			loaded.SaveData = variant.SaveData

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return Run(ctx, loaded)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "optional dotenv file with PONG_* settings")
	flags.StringVar(&cfg.Host, "host", cfg.Host, "listen host")
	flags.StringVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flags.StringVar(&cfg.ContentRoot, "content-root", cfg.ContentRoot, "directory holding index.html")
	flags.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "static asset directory, relative to the content root unless absolute")
	flags.BoolVar(&cfg.RootStatic, "root-static", cfg.RootStatic, "also serve static assets at the URL root")
	flags.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "expose Prometheus metrics at /metrics")
	flags.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	flags.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "maximum save-data request body size")

	return cmd
}

// applyFlags copies explicitly set flags over the loaded config
func applyFlags(cmd *cobra.Command, dst *config.Config, src config.Config) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		dst.Host = src.Host
	}
	if flags.Changed("port") {
		dst.Port = src.Port
	}
	if flags.Changed("content-root") {
		dst.ContentRoot = src.ContentRoot
	}
	if flags.Changed("static-dir") {
		dst.StaticDir = src.StaticDir
	}
	if flags.Changed("root-static") {
		dst.RootStatic = src.RootStatic
	}
	if flags.Changed("metrics") {
		dst.Metrics = src.Metrics
	}
	if flags.Changed("shutdown-timeout") {
		dst.ShutdownTimeout = src.ShutdownTimeout
	}
	if flags.Changed("max-body-bytes") {
		dst.MaxBodyBytes = src.MaxBodyBytes
	}
}

// Build validates cfg and wires repositories, services and handlers into a server
func Build(cfg config.Config) (*server.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	content, err := repository.NewDirRepository(cfg.ContentRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open content root: %w", err)
	}

	staticRoot := cfg.StaticRoot()
	static, err := repository.NewDirRepository(staticRoot)
	if err != nil {
		log.Printf("static root %s unavailable, static requests will 404: %v", staticRoot, err)
		static = repository.NewFSRepository(os.DirFS(staticRoot))
	}

	metricsInstance := metrics.NewMetrics()

	assetService := service.NewAssetService(content, static)
	assetHandler := handler.NewAssetHandler(assetService, cfg.RootStatic)

	var dataHandler *handler.DataHandler
	if cfg.SaveData {
		dataService := service.NewDataService(metricsInstance)
		dataHandler = handler.NewDataHandler(dataService, cfg.MaxBodyBytes)
	}

	return server.New(cfg, assetHandler, dataHandler, metricsInstance), nil
}

// Run builds the server and serves until ctx is done
func Run(ctx context.Context, cfg config.Config) error {
	srv, err := Build(cfg)
	if err != nil {
		return err
	}

	log.Printf("content root %s, static root %s, save-data=%t", cfg.ContentRoot, cfg.StaticRoot(), cfg.SaveData)
	log.Printf("Open http://%s in your browser", cfg.Addr())
	return srv.Run(ctx)
}
