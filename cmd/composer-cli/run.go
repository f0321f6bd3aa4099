package main

import (
	"fmt"

	"github.com/chainweave/composer/engine"
	"github.com/chainweave/composer/logger"
	"github.com/chainweave/composer/store"
	"github.com/chainweave/composer/utils"
	"github.com/chainweave/composer/wire"
	"github.com/urfave/cli/v2"
)

// RunCommand executes a YAML-defined step sequence against the store.
// Calls are served by the dry-run loopback host; read-only calls
// addressed to the store identity hit the store's read interface, so
// sequences can pass data between steps exactly as they would against a
// live host.
var RunCommand = cli.Command{
	Action:    runSequence,
	Name:      "run",
	Usage:     "executes a step sequence defined in a YAML file",
	ArgsUsage: "<sequence.yaml>",
	Flags: []cli.Flag{
		&utils.DbPathFlag,
		&utils.EngineAddressFlag,
		&utils.StoreAddressFlag,
		&utils.CallerFlag,
		&utils.AttachedValueFlag,
		&logger.LogLevelFlag,
	},
}

func runSequence(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("expected one argument, the sequence file")
	}
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "composer-cli")

	steps, err := wire.LoadSequence(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	host := engine.NewStoreReadHost(&loopbackHost{log: log}, cfg.StoreAddress, st)
	eng := engine.New(engine.Config{
		Self:         cfg.EngineAddress,
		StoreAddress: cfg.StoreAddress,
		LogLevel:     cfg.LogLevel,
	}, host, st)

	if err := eng.Run(steps, cfg.AttachedValue, cfg.Caller); err != nil {
		return err
	}
	log.Noticef("sequence of %d steps executed for caller %v", len(steps), cfg.Caller)
	return nil
}

func openStore(cfg *utils.Config) (store.Store, error) {
	if cfg.DbPath == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewLevelStore(cfg.DbPath)
}
