package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stepwise/physbridge/internal/backend/naive"
	"github.com/stepwise/physbridge/internal/config"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/pipeline"
	"github.com/stepwise/physbridge/internal/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config/physbridge.toml", "path to the TOML configuration")
	scenePath := flag.String("scene", "", "optional YAML scene to spawn at boot")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	backend := naive.New(log, naive.WithMaxContacts(cfg.Physics.MaxContacts))
	sc := scene.New(backend)
	sc.Physics.WorldServer().SetGravity(mathx.Vec3{
		X: cfg.Physics.Gravity[0],
		Y: cfg.Physics.Gravity[1],
		Z: cfg.Physics.Gravity[2],
	})

	if *scenePath != "" {
		named, err := scene.Load(sc, *scenePath)
		if err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
		log.Info("scene loaded", zap.String("path", *scenePath), zap.Int("entities", len(named)))
	}

	sched, err := pipeline.New(log).
		WithFramesPerSecond(int(cfg.Physics.FramesPerSecond)).
		WithMaxSubSteps(int(cfg.Physics.MaxSubSteps)).
		Build(sc)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Frame.TickRate)
	defer ticker.Stop()

	log.Info("frame loop started", zap.Duration("tick", cfg.Frame.TickRate))

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			// Measured frame delta, not the nominal tick. The clock's
			// time bank absorbs the jitter.
			sched.Run(now.Sub(last))
			last = now
			sc.World.FlushDestroyQueue()
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
