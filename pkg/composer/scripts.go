package composer

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// ScriptAuthor is written into every generated script
const ScriptAuthor = "pyRevit Extension Builder"

const scriptHeader = `# -*- coding: utf-8 -*-
"""{{doc .Name}} {{.Kind}} script.

{{.Summary}}
"""
__title__ = {{py .Name}}
__author__ = {{py .Author}}
{{- if .Tooltip}}
__doc__ = {{py .Tooltip}}
{{- end}}

`

const commandBody = `from pyrevit import revit, DB, UI
from pyrevit import forms, script

# Main code
output = script.get_output()
output.print_md({{py (printf "# %s Command" .Name)}})
output.print_md({{py (printf "This is a sample command created with %s." .Author)}})

# Get current document
doc = revit.doc

# Example: Show some basic document information
if doc:
    output.print_md("## Current Document Info")
    output.print_md("- **Document Title**: {}".format(doc.Title))
    output.print_md("- **File Path**: {}".format(doc.PathName))
    output.print_md("- **Active View**: {}".format(doc.ActiveView.Name))
`

const smartBody = `from pyrevit import script


def __selfinit__(script_cmp, ui_button_cmp, __rvt__):
    # return False to deactivate the button on startup
    return True


output = script.get_output()
output.print_md({{py (printf "# %s Command" .Name)}})
output.print_md({{py (printf "This smart button was created with %s." .Author)}})
`

const toggleBody = `from pyrevit import script

config = script.get_config()
enabled = not config.get_option("enabled", False)
config.enabled = enabled
script.save_config()
script.toggle_icon(enabled)

output = script.get_output()
output.print_md({{py (printf "# %s is now " .Name)}} + ("ON" if enabled else "OFF"))
`

var scriptTemplates = map[models.ElementType]*template.Template{
	models.ElementPushButton:   mustScript("pushbutton", "This script demonstrates a simple pyRevit command.", commandBody),
	models.ElementSplitButton:  mustScript("splitbutton", "Default command of the split button.", commandBody),
	models.ElementPulldown:     mustScript("pulldown", "This script demonstrates a simple pyRevit command.", commandBody),
	models.ElementSmartButton:  mustScript("smartbutton", "Smart buttons initialise themselves when the ribbon loads.", smartBody),
	models.ElementToggleButton: mustScript("togglebutton", "Flips a saved on/off option and the button icon.", toggleBody),
}

type scriptData struct {
	Name    string
	Kind    string
	Summary string
	Author  string
	Tooltip string
}

// scriptFuncs escape user text for the generated python: py yields a
// quoted string literal, doc text safe inside a triple quoted docstring
var scriptFuncs = template.FuncMap{
	"py":  strconv.Quote,
	"doc": docText,
}

func mustScript(kind, summary, body string) *template.Template {
	src := strings.Replace(scriptHeader, "{{.Summary}}", summary, 1) + body
	return template.Must(template.New(kind).Funcs(scriptFuncs).Parse(src))
}

// renderScript returns the element's own script, or the default script of
// its type when none was written
func renderScript(e *models.Element) (string, error) {
	if e.Code != "" {
		return e.Code, nil
	}
	return DefaultScript(e.Name, e.Tooltip, e.Type)
}

// DefaultScript renders the starter script generated for an element of
// type t
func DefaultScript(name, tooltip string, t models.ElementType) (string, error) {
	tmpl, ok := scriptTemplates[t]
	if !ok {
		return "", fmt.Errorf("%s elements carry no script", t)
	}

	kind := "button"
	if t == models.ElementPulldown {
		kind = "pulldown"
	}
	var sb strings.Builder
	err := tmpl.Execute(&sb, scriptData{
		Name:    name,
		Kind:    kind,
		Author:  ScriptAuthor,
		Tooltip: tooltip,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render script for %q: %w", name, err)
	}
	return sb.String(), nil
}

func docText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ", "\r", "")
	return r.Replace(s)
}
