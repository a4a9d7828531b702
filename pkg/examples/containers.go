package examples

import "github.com/pyrx/pyrx-cli/pkg/models"

func getContainerExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Containers",
			Description: "A pulldown, a full stack with a pulldown inside, and a split button",
			Tab:         "Example Containers",
			Panels: []ExamplePanel{
				{
					Name: "Groups",
					Elements: []ExampleElement{
						{
							Type:   models.ElementPulldown,
							Fields: models.ElementFields{Name: "More Tools", Tooltip: "Buttons grouped under one drop-down"},
							Children: []ExampleElement{
								{Type: models.ElementPushButton, Fields: models.ElementFields{Name: "Renumber", Tooltip: "Renumbers the selected elements"}},
								{Type: models.ElementPushButton, Fields: models.ElementFields{Name: "Purge Views", Tooltip: "Deletes views that are not on sheets"}},
							},
						},
						{
							Type:   models.ElementStack,
							Fields: models.ElementFields{Name: "Quick"},
							Children: []ExampleElement{
								{Type: models.ElementPushButton, Fields: models.ElementFields{Name: "Select", Tooltip: "Selects by category"}},
								{Type: models.ElementPushButton, Fields: models.ElementFields{Name: "Isolate", Tooltip: "Temporarily isolates the selection"}},
								{
									Type:   models.ElementPulldown,
									Fields: models.ElementFields{Name: "Filters"},
									Children: []ExampleElement{
										{Type: models.ElementPushButton, Fields: models.ElementFields{Name: "Walls"}},
										{Type: models.ElementPushButton, Fields: models.ElementFields{Name: "Doors"}},
									},
								},
							},
						},
						{
							Type:   models.ElementSplitButton,
							Fields: models.ElementFields{Name: "Sync Options", Tooltip: "Remembers the last option used"},
						},
					},
				},
			},
		},
	}
}
