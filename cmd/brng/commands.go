package main

import (
	"bufio"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/frontend"
)

func addSeedFlags(flags *pflag.FlagSet) {
	flags.String("seed", "", "seed the engine with an unsigned 64-bit integer")
	flags.String("seeds", "", "seed the engine with a comma separated seed sequence")
	flags.String("passphrase", "", "seed the engine with a passphrase")
}

func seedParams(flags *pflag.FlagSet) (frontend.SeedParams, error) {
	var p frontend.SeedParams
	var err error
	if p.Seed, err = flags.GetString("seed"); err != nil {
		return p, err
	}
	if p.Seeds, err = flags.GetString("seeds"); err != nil {
		return p, err
	}
	if p.Passphrase, err = flags.GetString("passphrase"); err != nil {
		return p, err
	}
	return p, nil
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered engines",
		Args:  cobra.NoArgs,
		RunE:  ListCmdFunc,
	}
}

// ListCmdFunc implements a Cobra command that prints every registered engine
// with the range of its values.
func ListCmdFunc(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBITS\tMIN\tMAX")
	for _, name := range engine.Drivers() {
		src, err := engine.New(name, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, src.Bits(), src.Min(), src.Max())
	}
	return w.Flush()
}

func genCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen ENGINE",
		Short: "Print values of an engine",
		Args:  cobra.ExactArgs(1),
		RunE:  GenCmdFunc,
	}
	addSeedFlags(cmd.Flags())
	cmd.Flags().IntP("count", "n", 10, "number of values to print")
	cmd.Flags().Uint64("skip", 0, "number of values to discard first")
	cmd.Flags().Bool("reverse", false, "step backwards from the seeded state")
	cmd.Flags().Bool("hex", false, "print values in hexadecimal")
	return cmd
}

// GenCmdFunc implements a Cobra command that prints values of a seeded
// engine in either direction.
func GenCmdFunc(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	p, err := seedParams(flags)
	if err != nil {
		return err
	}
	opts, err := p.Options()
	if err != nil {
		return err
	}
	count, err := flags.GetInt("count")
	if err != nil {
		return err
	}
	skip, err := flags.GetUint64("skip")
	if err != nil {
		return err
	}
	reverse, err := flags.GetBool("reverse")
	if err != nil {
		return err
	}
	hex, err := flags.GetBool("hex")
	if err != nil {
		return err
	}

	src, err := engine.NewFromOptions(args[0], opts)
	if err != nil {
		return errors.Wrapf(err, "failed to create engine %s", args[0])
	}
	src.Discard(skip)

	step := src.Next
	if reverse {
		step = src.Prev
	}
	digits := int(src.Bits()+3) / 4

	w := bufio.NewWriter(cmd.OutOrStdout())
	for i := 0; i < count; i++ {
		if hex {
			fmt.Fprintf(w, "%0*x\n", digits, step())
		} else {
			fmt.Fprintln(w, step())
		}
	}
	return w.Flush()
}
