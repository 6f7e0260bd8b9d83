package terminal

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/price-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/price-atlas/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	logger  zerolog.Logger
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Logger zerolog.Logger
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{logger: opts.Logger}
	cli.rootCmd = cli.newRootCmd(export.NewReporter(opts.Output))
	return cli
}

func (cli *CLI) Execute() error {
	ctx := cli.logger.WithContext(context.Background())
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd(reporter *export.Reporter) *cobra.Command {
	global := &commands.GlobalFlags{}

	cmd := &cobra.Command{
		Use:          "price-atlas",
		Short:        "Azure retail price catalog exporter",
		SilenceUsage: true,
	}
	global.Register(cmd.PersistentFlags())

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		if err := global.Resolve(c.Flags()); err != nil {
			return err
		}

		level := zerolog.InfoLevel
		if global.Verbose {
			level = zerolog.DebugLevel
		}
		logger := cli.logger.Level(level)
		c.SetContext(logger.WithContext(c.Context()))
		return nil
	}

	cmd.AddCommand(commands.NewPricesCmd(global))
	cmd.AddCommand(commands.NewFxRatesCmd(global, reporter))

	return cmd
}
