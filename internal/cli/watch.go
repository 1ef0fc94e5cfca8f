package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/juliexu77/babyrhythm/internal/logger"
	"github.com/juliexu77/babyrhythm/internal/watch"
)

type WatchCmd struct{}

func (cmd *WatchCmd) Run(ctx *Context) error {
	fmt.Println("Watching for missed activities. Ctrl-C to stop.")

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Watch loop started")
	err := watch.New(ctx.Store).Run(sigCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Watch loop stopped")
	return nil
}
