package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

var exit = os.Exit

// NotifyContext is cancelled on the first SIGINT or SIGTERM. A second signal
// exits the process immediately.
func NotifyContext(parent context.Context, log *logger.Logger) (context.Context, context.CancelFunc) {
	return notifyOn(parent, log, make(chan os.Signal, 2), syscall.SIGINT, syscall.SIGTERM)
}

func notifyOn(parent context.Context, log *logger.Logger, ch chan os.Signal, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stopped := make(chan struct{})
	if len(sigs) > 0 {
		signal.Notify(ch, sigs...)
	}

	go func() {
		select {
		case sig := <-ch:
			if log != nil {
				log.Info("shutdown signal received", "signal", sig.String())
			}
			cancel()
		case <-stopped:
			return
		}
		select {
		case sig := <-ch:
			if log != nil {
				log.Warn("second shutdown signal, exiting now", "signal", sig.String())
			}
			exit(1)
		case <-stopped:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(ch)
			close(stopped)
			cancel()
		})
	}
}
