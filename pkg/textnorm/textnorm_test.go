// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serista/serista/pkg/textnorm"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Dark", "dark"},
		{"accents", "Pérdida Única", "perdida unica"},
		{"already_folded", "breaking bad", "breaking bad"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Fold(tt.in))
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("La Casa de Papel", "casa"))
	assert.True(t, textnorm.Contains("Pérdida", "perdida"))
	assert.True(t, textnorm.Contains("anything", ""))
	assert.False(t, textnorm.Contains("Dark", "stranger"))
}
