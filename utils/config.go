// Package utils collects the configuration surface shared by the
// command line tools.
package utils

import (
	"fmt"
	"math/big"

	"github.com/chainweave/composer/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var (
	DbPathFlag = cli.PathFlag{
		Name:  "db",
		Usage: "path of the store database directory; if empty, an in-memory store is used",
	}
	EngineAddressFlag = cli.StringFlag{
		Name:  "engine-address",
		Usage: "identity the engine acts under when namespacing storage",
		Value: "0x00000000000000000000000000000000000000e1",
	}
	StoreAddressFlag = cli.StringFlag{
		Name:  "store-address",
		Usage: "identity under which the store is addressable as a call target",
		Value: "0x00000000000000000000000000000000000000d0",
	}
	CallerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "account driving the sequence; output storage is scoped to it",
		Value: "0x0000000000000000000000000000000000000001",
	}
	AttachedValueFlag = cli.StringFlag{
		Name:  "value",
		Usage: "value attached to the sequence, in wei",
		Value: "0",
	}
)

// Config summarizes the parameters of a tool invocation.
type Config struct {
	LogLevel      string
	DbPath        string
	EngineAddress common.Address
	StoreAddress  common.Address
	Caller        common.Address
	AttachedValue *big.Int
}

// NewConfig parses and validates the command line flags of the given
// context.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := &Config{
		LogLevel: ctx.String(logger.LogLevelFlag.Name),
		DbPath:   ctx.Path(DbPathFlag.Name),
	}

	for _, item := range []struct {
		flag string
		dst  *common.Address
	}{
		{EngineAddressFlag.Name, &cfg.EngineAddress},
		{StoreAddressFlag.Name, &cfg.StoreAddress},
		{CallerFlag.Name, &cfg.Caller},
	} {
		value := ctx.String(item.flag)
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("invalid address %q for --%s", value, item.flag)
		}
		*item.dst = common.HexToAddress(value)
	}

	value, ok := new(big.Int).SetString(ctx.String(AttachedValueFlag.Name), 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("invalid attached value %q", ctx.String(AttachedValueFlag.Name))
	}
	cfg.AttachedValue = value

	return cfg, nil
}
