package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a configuration key",
		Long: fmt.Sprintf(`Prints the value in effect after applying the config file and SEME_*
environment variables.

Valid keys: %s`, keyList()),
		Example: `  seme config get language`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func keyList() string {
	return strings.Join(config.Keys(), ", ")
}
