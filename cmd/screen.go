package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pullback-trading/internal/dto"
	"pullback-trading/internal/repository"
	"pullback-trading/internal/service"

	"github.com/spf13/cobra"
)

var (
	screenTimeframe     string
	screenOnlyTriggered bool
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run a one-shot low-volume pullback screen over the universe",
	Run:   Screen,
}

func init() {
	screenCmd.Flags().StringVar(&screenTimeframe, "timeframe", "", "Timeframe name, e.g. 6M_1d (default from config)")
	screenCmd.Flags().BoolVar(&screenOnlyTriggered, "only-triggered", false, "Print only triggered tickers")
}

func Screen(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.cache, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo)

	resp, err := services.ScreenerService.Screen(ctx, dto.ScreenRequest{
		Timeframe:     screenTimeframe,
		OnlyTriggered: &screenOnlyTriggered,
	})
	if err != nil {
		log.Fatalf("Screen failed: %v", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal result: %v", err)
	}
	fmt.Println(string(out))
}
