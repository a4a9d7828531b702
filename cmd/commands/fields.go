package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/assets"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// fieldFlags are the element field flags shared by add and edit
type fieldFlags struct {
	name       string
	title      string
	tooltip    string
	url        string
	command    string
	scriptFile string
	iconFile   string
	clearIcon  bool
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Element name")
	cmd.Flags().StringVar(&f.title, "title", "", "Ribbon title (defaults to the name)")
	cmd.Flags().StringVar(&f.tooltip, "tooltip", "", "Tooltip text")
	cmd.Flags().StringVar(&f.url, "url", "", "Hyperlink for link buttons")
	cmd.Flags().StringVar(&f.command, "command", "", "Invoke target for invoke buttons")
	cmd.Flags().StringVar(&f.scriptFile, "script", "", "Read the button script from this file")
	cmd.Flags().StringVar(&f.iconFile, "icon", "", "Use this image as the button icon")
	cmd.Flags().BoolVar(&f.clearIcon, "clear-icon", false, "Drop the uploaded icon")
}

// apply overlays the flags that were set on cmd onto base
func (f *fieldFlags) apply(cmd *cobra.Command, base models.ElementFields) (models.ElementFields, error) {
	changed := cmd.Flags().Changed
	if changed("name") {
		if err := cli.ValidateName(f.name); err != nil {
			return base, err
		}
		base.Name = f.name
	}
	if changed("title") {
		base.Title = f.title
	}
	if changed("tooltip") {
		base.Tooltip = f.tooltip
	}
	if changed("url") {
		base.URL = f.url
	}
	if changed("command") {
		base.Command = f.command
	}
	if changed("script") {
		if err := cli.ValidateFilePath(f.scriptFile); err != nil {
			return base, err
		}
		code, err := os.ReadFile(f.scriptFile)
		if err != nil {
			return base, fmt.Errorf("failed to read script: %w", err)
		}
		base.Code = string(code)
	}
	if f.clearIcon {
		base.IconData = ""
	}
	if changed("icon") {
		uri, err := iconDataURI(f.iconFile)
		if err != nil {
			return base, err
		}
		base.IconData = uri
	}
	return base, nil
}

func iconDataURI(path string) (string, error) {
	if err := cli.ValidateFilePath(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read icon: %w", err)
	}
	return assets.EncodeDataURI(http.DetectContentType(data), data), nil
}
