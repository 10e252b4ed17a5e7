// Copyright (c) 2026 Aethercal. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aetherialcal/aethercal/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Curse of the Aether", "curse-of-the-aether"},
		{"apostrophes", "Val'kaurn Chronicles", "val-kaurn-chronicles"},
		{"accents", "Märchen über Drachen", "marchen-uber-drachen"},
		{"extra_symbols", "  --Tomb!! of   Annihilation--  ", "tomb-of-annihilation"},
		{"digits", "Season 2", "season-2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
