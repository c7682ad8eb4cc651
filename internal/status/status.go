// Package status maps order status codes to their display presentation.
package status

// Known order status codes on the upstream API.
const (
	Pending    = "Pending"
	Dispatched = "Dispatched"
	Cancelled  = "Cancelled"
)

// defaultColor is used for codes the admin UI does not recognize.
const defaultColor = "#000"

// Presentation is the display color and label for a status code.
type Presentation struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// Describe returns the presentation for any status code. Unrecognized
// codes pass through as the label with the neutral color; the function
// is total and never fails.
func Describe(code string) Presentation {
	switch code {
	case Pending:
		return Presentation{Color: "#FFC107", Label: Pending}
	case Dispatched:
		return Presentation{Color: "#4CAF50", Label: Dispatched}
	case Cancelled:
		return Presentation{Color: "#F44336", Label: Cancelled}
	default:
		return Presentation{Color: defaultColor, Label: code}
	}
}
