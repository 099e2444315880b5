package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/monitor"
	"github.com/mirqab/mirqab/internal/server"
	"github.com/mirqab/mirqab/internal/ui"
)

// serveCommand runs the monitor and gateway until interrupted.
func serveCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyServerFlags(cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !Quiet() {
		ui.PrintHeader(ui.HeaderInfo{
			Version: GetVersion(),
			Tagline: "Training monitor - press Ctrl+C to stop",
			Addr:    cfg.Server.Addr(),
		})
	}

	mon := monitor.New(cfg.History.Limit, cfg.Server.QueueSize, commandLogger("[monitor]"))
	srv := server.New(cfg, mon, commandLogger("[server]"))

	ctx, stop := signalContext()
	defer stop()

	return srv.Run(ctx)
}

// signalContext returns a context cancelled by Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
