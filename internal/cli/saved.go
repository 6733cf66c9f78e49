package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcbanners/banners/pkg/pipeline"
)

// saveCommand creates the save command.
func (c *CLI) saveCommand() *cobra.Command {
	var id, owner string

	cmd := &cobra.Command{
		Use:   "save [type] [key=value...]",
		Short: "Save banner settings under a mnemonic",
		Example: `  banners save polymart_team --id 3 background=grape
  banners save minecraft_server _server_host=play.example.com --owner alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, settings, err := c.bannerArgs(args, id)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Driver == "memory" {
				printWarning("Saved banners are kept in memory and lost on exit; set [store] driver = \"mongo\"")
			}
			runner, err := c.newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			b, err := runner.Save(ctx, t, owner, settings)
			if err != nil {
				return err
			}
			printSuccess("Saved %s as %s", b.Type, StyleHighlight.Render(b.Mnemonic))
			printNextStep("Render it", "banners recall "+b.Mnemonic)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "value for the banner type's identifier key")
	cmd.Flags().StringVar(&owner, "owner", "", "owner recorded with the saved banner")
	return cmd
}

// recallCommand creates the recall command.
func (c *CLI) recallCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "recall <mnemonic>",
		Short: "Render a saved banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := outputFormat(format, output)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			res, err := withSpinner(ctx, "Recalling "+args[0]+"...", func() (*pipeline.Result, error) {
				return runner.Recall(ctx, args[0], f)
			})
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("%s.%s", strings.ToLower(args[0]), f.Extension())
			}
			return writeResult(res, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <mnemonic>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: png (default), jpeg")
	return cmd
}
