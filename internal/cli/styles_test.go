package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		icon   string
	}{
		{name: "success", render: FormatSuccess, icon: SuccessIcon},
		{name: "error", render: FormatError, icon: ErrorIcon},
		{name: "warning", render: FormatWarning, icon: WarningIcon},
		{name: "title", render: FormatTitle, icon: TruckIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.render("delivery done")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "delivery done")
		})
	}
}

func TestRenderBox(t *testing.T) {
	out := RenderBox("Route statistics", "Stops: 3/10\nItems: 5/12")

	assert.Contains(t, out, "Route statistics")
	assert.Contains(t, out, "Stops: 3/10")
	assert.Contains(t, out, "Items: 5/12")
}
