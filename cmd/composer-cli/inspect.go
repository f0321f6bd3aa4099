package main

import (
	"fmt"

	"github.com/chainweave/composer/store"
	"github.com/chainweave/composer/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

// flagDynamic selects the variable-length read interface.
const flagDynamic = "dynamic"

// InspectCommand reads slots through the store's external read
// interface. Uninitialized slots are reported as such; they never
// default to a zero word.
var InspectCommand = cli.Command{
	Action:    inspect,
	Name:      "inspect",
	Usage:     "reads storage slots of an (owner, engine) namespace",
	ArgsUsage: "<owner-address> <slot> [<slot>...]",
	Flags: []cli.Flag{
		&utils.DbPathFlag,
		&utils.EngineAddressFlag,
		&cli.BoolFlag{
			Name:  flagDynamic,
			Usage: "read slots as variable-length entries",
		},
	},
}

func inspect(ctx *cli.Context) error {
	if ctx.Args().Len() < 2 {
		return fmt.Errorf("expected an owner address and at least one slot")
	}
	if !common.IsHexAddress(ctx.Args().Get(0)) {
		return fmt.Errorf("invalid owner address %q", ctx.Args().Get(0))
	}
	owner := common.HexToAddress(ctx.Args().Get(0))

	engineAddress := ctx.String(utils.EngineAddressFlag.Name)
	if !common.IsHexAddress(engineAddress) {
		return fmt.Errorf("invalid engine address %q", engineAddress)
	}
	ns := store.NamespaceOf(owner, common.HexToAddress(engineAddress))

	if ctx.Path(utils.DbPathFlag.Name) == "" {
		return fmt.Errorf("--%s is required to inspect persisted storage", utils.DbPathFlag.Name)
	}
	st, err := store.NewLevelStore(ctx.Path(utils.DbPathFlag.Name))
	if err != nil {
		return err
	}
	defer st.Close()

	bold := color.New(color.Bold).SprintfFunc()
	fmt.Fprintf(ctx.App.Writer, "Namespace:\t%s\n\n", bold(ns.String()))

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"slot", "value"})
	for i := 1; i < ctx.Args().Len(); i++ {
		slot := common.HexToHash(ctx.Args().Get(i))
		table.Append([]string{slot.String(), readSlot(st, ns, slot, ctx.Bool(flagDynamic))})
	}
	table.Render()
	return nil
}

func readSlot(st store.Store, ns store.Namespace, slot common.Hash, dynamic bool) string {
	if dynamic {
		data, err := st.ReadVariable(ns, slot)
		if err != nil {
			return err.Error()
		}
		return hexutil.Encode(data)
	}
	word, err := st.Read(ns, slot)
	if err != nil {
		return err.Error()
	}
	return word.String()
}
