package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"keys-monitor/core/config"
	"keys-monitor/core/loader"
	"keys-monitor/core/logger"
	"keys-monitor/core/middleware/auth"
	"keys-monitor/core/middleware/ratelimit"
	"keys-monitor/core/middleware/rayid"

	"keys-monitor/feature/dungeons"
	"keys-monitor/feature/keys"
	"keys-monitor/feature/monitor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "keys-monitor/docs/swagger"
)

var autostart bool

// @title Keys Monitor API
// @version 1.0
// @description Control API for the AstralKeys sheet monitor.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the monitor and its control API",
	Long: `Starts the control API and, with --autostart, begins watching the saved
addon file right away. Monitoring can also be started through POST /monitor/start.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger, recording history for /monitor/logs
		logs := logger.NewBuffer(cfg.Log.History)
		logg, err := logger.NewWithBuffer(&cfg.Log, logs)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Wire services
		comp, err := buildComponents(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize", zap.Error(err))
		}
		defer comp.Close()

		if autostart {
			if err := comp.monitor.Autostart(ctx); err != nil {
				logg.Warn("Autostart skipped", zap.Error(err))
			}
		}

		// 4. Control API
		var app *fiber.App
		if cfg.Server.Enabled {
			app = fiber.New(fiber.Config{
				DisableStartupMessage: true, // We will log our own startup message
			})

			mgr := loader.NewManager()
			mgr.Register(monitor.NewFeature(comp.monitor, logs))
			mgr.Register(keys.NewFeature(comp.keys, comp.monitor.SavedPath))
			mgr.Register(dungeons.NewFeature(comp.resolver))

			// RayID must be first to trace everything
			app.Use(rayid.New())

			app.Use(func(c *fiber.Ctx) error {
				l := logger.WithRayID(logg, c)
				l.Debug("Request started",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("ip", c.IP()),
				)
				err := c.Next()
				if err != nil {
					l.Error("Request error", zap.Error(err))
				}
				return err
			})

			// Swagger Documentation (Public)
			app.Get("/swagger/*", swagger.HandlerDefault)

			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
			app.Use(ratelimit.New(ratelimit.Config{
				Limit:  cfg.Server.RateLimit,
				Window: cfg.Server.RateWindow,
				Logger: logg,
			}))

			if err := mgr.LoadAll(app); err != nil {
				logg.Fatal("Failed to load features", zap.Error(err))
			}

			go func() {
				logg.Info("Starting control API", zap.String("address", cfg.Server.Address()))
				if err := app.Listen(cfg.Server.Address()); err != nil {
					logg.Fatal("Server failed to start", zap.Error(err))
				}
			}()
		} else if !comp.monitor.Running() {
			logg.Warn("Control API disabled and monitor not running; nothing to do")
			return
		}

		// 5. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")

		if comp.monitor.Stop() {
			comp.monitor.Wait()
		}
		if app != nil {
			_ = app.Shutdown()
		}
	},
}

func init() {
	startCmd.Flags().BoolVar(&autostart, "autostart", false, "Start monitoring the saved addon file immediately")
	RootCmd.AddCommand(startCmd)
}
