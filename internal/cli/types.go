package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/render/layout"
)

// typesCommand creates the types command.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List banner types, identifier keys and style settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(typesTable(backend.BannerTypes()))
			fmt.Println()
			printKeyValue("backgrounds", strings.Join(layout.BackgroundNames(), ", "))
			printKeyValue("styles", strings.Join(layout.OptionKeys(), ", "))
			return nil
		},
	}
}
