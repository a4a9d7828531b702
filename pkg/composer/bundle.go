package composer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// bundleDescriptor is the content of bundle.yaml. Field order is the key
// order of the emitted document.
type bundleDescriptor struct {
	Title     string `yaml:"title"`
	Tooltip   string `yaml:"tooltip,omitempty"`
	Pulldown  bool   `yaml:"pulldown,omitempty"`
	Hyperlink string `yaml:"hyperlink,omitempty"`
	Invoke    string `yaml:"invoke,omitempty"`
}

func renderBundle(e *models.Element) (string, error) {
	desc := bundleDescriptor{
		Title:   e.Title,
		Tooltip: e.Tooltip,
	}
	if desc.Title == "" {
		desc.Title = e.Name
	}

	switch e.Type {
	case models.ElementPulldown:
		desc.Pulldown = true
	case models.ElementLinkButton:
		desc.Hyperlink = e.URL
	case models.ElementInvokeButton:
		desc.Invoke = e.Command
	}

	data, err := yaml.Marshal(&desc)
	if err != nil {
		return "", fmt.Errorf("failed to render %s for %q: %w", BundleFile, e.Name, err)
	}
	return string(data), nil
}
