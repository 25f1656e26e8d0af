package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dex-swap/pkg/chains"
)

func TestOrderedURLs(t *testing.T) {
	endpoints := chains.Endpoints{
		Interface: []string{"a", "b"},
		Default:   []string{"b", "c"},
		Public:    []string{"d"},
		Fallback:  []string{},
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, OrderedURLs(endpoints))
}

func TestOrderedURLsFiltersEmptyEntries(t *testing.T) {
	endpoints := chains.Endpoints{
		Interface: []string{"", "a"},
		Default:   []string{"b", ""},
		Fallback:  []string{""},
	}

	assert.Equal(t, []string{"a", "b"}, OrderedURLs(endpoints))
}

func TestOrderedURLsFirstOccurrenceWins(t *testing.T) {
	endpoints := chains.Endpoints{
		Default:  []string{"x", "y"},
		Public:   []string{"y", "x", "z"},
		Fallback: []string{"x"},
	}

	assert.Equal(t, []string{"x", "y", "z"}, OrderedURLs(endpoints))
}

func TestOrderedURLsEmpty(t *testing.T) {
	assert.Empty(t, OrderedURLs(chains.Endpoints{}))
}
