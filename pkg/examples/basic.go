package examples

import "github.com/pyrx/pyrx-cli/pkg/models"

func getBasicExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Buttons",
			Description: "One of each button type: scripted, toggle, smart, link and invoke",
			Tab:         "Examples",
			Panels: []ExamplePanel{
				{
					Name: "Scripts",
					Elements: []ExampleElement{
						{
							Type: models.ElementPushButton,
							Fields: models.ElementFields{
								Name:    "Hello World",
								Title:   "Hello",
								Tooltip: "Prints a greeting in the pyRevit output window",
								Code: `from pyrevit import script

output = script.get_output()
output.print_md("# Hello from pyrx")
`,
							},
						},
						{
							Type: models.ElementToggleButton,
							Fields: models.ElementFields{
								Name:    "Toggle Mode",
								Tooltip: "Switches a setting on and off; the icon shows the state",
							},
						},
						{
							Type: models.ElementSmartButton,
							Fields: models.ElementFields{
								Name:    "Smart Sync",
								Tooltip: "Runs its __selfinit__ when the ribbon loads",
							},
						},
					},
				},
				{
					Name: "Links",
					Elements: []ExampleElement{
						{
							Type: models.ElementLinkButton,
							Fields: models.ElementFields{
								Name:    "pyRevit Docs",
								Tooltip: "Opens the pyRevit documentation",
								URL:     "https://pyrevitlabs.notion.site/",
							},
						},
						{
							Type: models.ElementInvokeButton,
							Fields: models.ElementFields{
								Name:    "Run Assembly",
								Tooltip: "Invokes a command class from a compiled add-in",
								Command: "MyAddin.Commands.Run",
							},
						},
					},
				},
			},
		},
	}
}
