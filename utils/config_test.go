package utils

import (
	"flag"
	"strings"
	"testing"

	"github.com/chainweave/composer/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

func makeContext(t *testing.T, values map[string]string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(logger.LogLevelFlag.Name, logger.LogLevelFlag.Value, "")
	set.String(DbPathFlag.Name, "", "")
	set.String(EngineAddressFlag.Name, EngineAddressFlag.Value, "")
	set.String(StoreAddressFlag.Name, StoreAddressFlag.Value, "")
	set.String(CallerFlag.Name, CallerFlag.Value, "")
	set.String(AttachedValueFlag.Name, AttachedValueFlag.Value, "")
	for name, value := range values {
		if err := set.Set(name, value); err != nil {
			t.Fatalf("cannot set --%s: %v", name, err)
		}
	}
	return cli.NewContext(nil, set, nil)
}

func TestNewConfig_DefaultsAreValid(t *testing.T) {
	cfg, err := NewConfig(makeContext(t, nil))
	if err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	if got, want := cfg.EngineAddress, common.HexToAddress(EngineAddressFlag.Value); got != want {
		t.Errorf("engine address: got %v, want %v", got, want)
	}
	if cfg.AttachedValue.Sign() != 0 {
		t.Errorf("default attached value not zero: %v", cfg.AttachedValue)
	}
}

func TestNewConfig_ParsesOverrides(t *testing.T) {
	cfg, err := NewConfig(makeContext(t, map[string]string{
		CallerFlag.Name:        "0x0000000000000000000000000000000000ca11e4",
		AttachedValueFlag.Name: "12345",
	}))
	if err != nil {
		t.Fatalf("overrides rejected: %v", err)
	}
	if got, want := cfg.Caller, common.HexToAddress("0xca11e4"); got != want {
		t.Errorf("caller: got %v, want %v", got, want)
	}
	if cfg.AttachedValue.Int64() != 12345 {
		t.Errorf("attached value: got %v, want 12345", cfg.AttachedValue)
	}
}

func TestNewConfig_RejectsMalformedFlags(t *testing.T) {
	tests := map[string]map[string]string{
		"bad caller":     {CallerFlag.Name: "not-an-address"},
		"bad engine":     {EngineAddressFlag.Name: "0x123"},
		"bad value":      {AttachedValueFlag.Name: "one hundred"},
		"negative value": {AttachedValueFlag.Name: "-5"},
	}
	for name, values := range tests {
		if _, err := NewConfig(makeContext(t, values)); err == nil {
			t.Errorf("%s: not rejected", name)
		} else if !strings.Contains(err.Error(), "invalid") {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}
}
