package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robmorgan/lcs/cuelist"
	"github.com/robmorgan/lcs/logger"
	"github.com/robmorgan/lcs/universe"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"
)

func runShow(cmd *cobra.Command, opts *options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logger.GetProjectLogger()

	cfg, u, err := load(opts)
	if err != nil {
		return err
	}
	defer u.Close()

	if err := u.Start(cfg.Output); err != nil {
		return err
	}

	if opts.metricsAddr != "" {
		go serveMetrics(ctx, opts.metricsAddr)
	}

	cues := cuelist.FromConfig(cfg.Cues)
	if len(cues) > 0 && opts.fadeTime == 0 {
		master := cuelist.NewMaster(clock.RealClock{}, u)
		cl := cuelist.NewCueList("main")
		for _, c := range cues {
			master.EnQueueCue(c, cl)
		}
		if err := master.ProcessCueList(ctx, cl); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else if err := fadeAll(ctx, u, opts.fadeTime); err != nil {
		return err
	}

	logger.Info("holding the look, interrupt to stop")
	if err := watch(ctx, u); err != nil {
		return err
	}

	logger.Info("shutting down lcs")
	return u.Close()
}

func fadeAll(ctx context.Context, u *universe.Universe, d time.Duration) error {
	if d == 0 {
		d = defaultFadeTime
	}

	transition, err := u.FadeInAll(d)
	if err != nil {
		return err
	}
	select {
	case <-transition.Done():
	case <-ctx.Done():
		transition.Stop()
	}
	return nil
}

// watch blocks until ctx is done or the output driver gave up.
func watch(ctx context.Context, u *universe.Universe) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !u.Running() {
				return u.LastError()
			}
		}
	}
}

func serveMetrics(ctx context.Context, addr string) {
	logger := logger.GetProjectLogger().WithField("addr", addr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("metrics server failed")
	}
}

func runBlackout(cmd *cobra.Command, opts *options) error {
	cfg, u, err := load(opts)
	if err != nil {
		return err
	}
	defer u.Close()

	if err := u.Start(cfg.Output); err != nil {
		return err
	}
	u.Blackout()

	// Close sends the pending blackout frame before the transport goes away
	return u.Close()
}
