package audit

import "github.com/zero-day-ai/nipper/parser"

// Positional contracts of every section kind. Offsets count child elements.
var (
	informationLayout = parser.NewLayout("information",
		parser.Slot{Name: "title", Offset: 0},
		parser.Slot{Name: "author", Offset: 1},
		parser.Slot{Name: "date", Offset: 2},
		parser.Slot{Name: "generator", Offset: 3},
	)

	generatorLayout = parser.NewLayout("generator",
		parser.Slot{Name: "version", Offset: 3},
	)

	introductionLayout = parser.NewLayout("introduction",
		parser.Slot{Name: "date", Offset: 0},
		parser.Slot{Name: "devices", Offset: 1},
		parser.Slot{Name: "overview", Offset: 2, Optional: true},
		parser.Slot{Name: "rating_summary", Offset: 3, Optional: true},
	)

	ratingSummaryLayout = parser.NewLayout("rating summary",
		parser.Slot{Name: "table", Offset: 2},
	)

	findingLayout = parser.NewLayout("finding",
		parser.Slot{Name: "details", Offset: 0},
		parser.Slot{Name: "summary", Offset: 1},
		parser.Slot{Name: "finding", Offset: 2},
		parser.Slot{Name: "impact", Offset: 3},
		parser.Slot{Name: "ease", Offset: 4},
		parser.Slot{Name: "recommendation", Offset: 5},
	)

	issueDetailsLayout = parser.NewLayout("issue details",
		parser.Slot{Name: "devices", Offset: 0},
		parser.Slot{Name: "ratings", Offset: 1},
	)

	cveLayout = parser.NewLayout("cve",
		parser.Slot{Name: "rating", Offset: 0},
		parser.Slot{Name: "summary", Offset: 1},
		parser.Slot{Name: "devices", Offset: 2},
		parser.Slot{Name: "advisories", Offset: 3},
		parser.Slot{Name: "references", Offset: 4},
	)

	cveListLayout = parser.NewLayout("cve list",
		parser.Slot{Name: "heading", Offset: 0},
		parser.Slot{Name: "list", Offset: 1},
	)

	observationLayout = parser.NewLayout("observation",
		parser.Slot{Name: "overview", Offset: 0},
		parser.Slot{Name: "devices", Offset: 1, Optional: true},
	)

	affectedDeviceLayout = parser.NewLayout("affected device",
		parser.Slot{Name: "text", Offset: 0},
		parser.Slot{Name: "details", Offset: 1, Optional: true},
	)

	conclusionLayout = parser.NewLayout("conclusion",
		parser.Slot{Name: "per_device", Offset: 1},
		parser.Slot{Name: "critical", Offset: 3},
		parser.Slot{Name: "high", Offset: 5},
		parser.Slot{Name: "medium", Offset: 7},
		parser.Slot{Name: "low", Offset: 9},
		parser.Slot{Name: "informational", Offset: 11},
	)

	recommendationsLayout = parser.NewLayout("recommendations",
		parser.Slot{Name: "list", Offset: 1},
	)

	mitigationLayout = parser.NewLayout("mitigation",
		parser.Slot{Name: "quick", Offset: 1},
		parser.Slot{Name: "planned", Offset: 3},
		parser.Slot{Name: "involved", Offset: 5},
	)
)
