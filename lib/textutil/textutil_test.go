package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsToken(t *testing.T) {
	table := []struct {
		text     string
		token    string
		expected bool
	}{
		{text: "12, Main St", token: "12", expected: true},
		{text: "120, Main St", token: "12", expected: false},
		{text: "Flat 12a, Main St", token: "12A", expected: true},
		{text: "Flat 12a, Main St", token: "12", expected: false},
		{text: "Main St", token: "", expected: false},
		{text: "Main St", token: " , ", expected: false},
		{text: "Flat 3, Elm Rd", token: "flat 3", expected: true},
		{text: "Flat 3, Elm Rd", token: "Flat 30", expected: false},
		{text: "Elm Rd", token: "Elm Rd Flat", expected: false},
	}

	for _, row := range table {
		require.Equal(t, row.expected, ContainsToken(row.text, row.token), "%q in %q", row.token, row.text)
	}
}
