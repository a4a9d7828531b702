package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/files"
)

var setGlobal bool

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Write one key into the settings file, keeping the other keys.

The file is the one pyrx reads settings from: $PYRX_CONFIG when set, else
` + files.ConfigFileName + ` in the working directory (created if missing). Use
--global to write the user config file instead.

Keys:
  ` + strings.Join(files.SettingKeys, "\n  ") + `

Examples:
  # Use a different layout file
  pyrx set layout.path ribbon.json

  # Serve without writing the layout after each change
  pyrx set server.autosave false

  # Icons from a shared directory, for every project
  pyrx set icons.source /srv/pyrx/icons --global`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}

	cmd.Flags().BoolVarP(&setGlobal, "global", "g", false, "Write the user config file")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path := files.SettingsPath()
	if setGlobal {
		path = files.UserConfigPath()
		if path == "" {
			return fmt.Errorf("cannot locate the user config directory")
		}
	} else if path == "" || path == files.UserConfigPath() {
		path = files.ConfigFileName
	}

	if err := files.SetSetting(path, key, value); err != nil {
		return err
	}

	cli.PrintSuccess("Set %s = %s in %s", key, value, path)
	env := files.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(env); ok {
		cli.PrintWarning("%s is set and overrides this value", env)
	}
	return nil
}
