package cli

import (
	"fmt"
	"time"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/monitor"
	"github.com/mirqab/mirqab/internal/server"
	"github.com/mirqab/mirqab/internal/simulate"
	"github.com/mirqab/mirqab/internal/ui"
)

// demoCommand runs the monitor with a scripted training session.
func demoCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !Quiet() {
		ui.PrintHeader(ui.HeaderInfo{
			Version: GetVersion(),
			Tagline: "Demo session - press Ctrl+C to stop",
			Addr:    cfg.Server.Addr(),
		})
		fmt.Println("Open the URL above, or run 'mirqab watch' in another terminal.")
		fmt.Println()
	}

	mon := monitor.New(cfg.History.Limit, cfg.Server.QueueSize, commandLogger("[monitor]"))
	srv := server.New(cfg, mon, commandLogger("[server]"))

	ctx, stop := signalContext()
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run(ctx)
	}()

	driver := simulate.New(mon, simulate.Options{
		ModelName:   demoModelFlag,
		Epochs:      demoEpochsFlag,
		DatasetSize: demoDatasetFlag,
		BatchSize:   demoBatchFlag,
		Speed:       demoSpeedFlag,
	}, commandLogger("[demo]"))

	start := time.Now()
	runErr := driver.Run(ctx)

	switch {
	case runErr == nil:
		if !Quiet() {
			state := mon.Snapshot()
			fmt.Println()
			fmt.Print(ui.RenderSessionSummary(ui.SessionSummary{
				Model:     state.ModelName,
				Epochs:    state.TotalEpochs,
				Steps:     state.CurrentStep,
				FinalLoss: state.Loss,
				Duration:  time.Since(start),
			}))
			fmt.Println("\nThe dashboard stays up with the finished session. Ctrl+C to stop.")
		}
		<-ctx.Done()
	case ctx.Err() == nil:
		// The driver failed on its own; take the server down with it.
		stop()
		<-serveErr
		return runErr
	}

	stop()
	return <-serveErr
}
