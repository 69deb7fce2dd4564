package cachekey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmans/sanityimage/internal/config"
)

func TestDerive_Deterministic(t *testing.T) {
	cfg := config.Config{ProjectID: "abc123", Dataset: "production"}

	k1, err := Derive(cfg, ImageExtensions)
	require.NoError(t, err)
	k2, err := Derive(cfg, ImageExtensions)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.True(t, strings.HasPrefix(k1, "image-ext-"), "key %q should carry namespace", k1)
	assert.Len(t, k1, len("image-ext-")+16)
}

func TestDerive_IgnoresUnrelatedFields(t *testing.T) {
	a := config.Config{ProjectID: "abc123", Dataset: "production"}
	b := config.Config{ProjectID: "abc123", Dataset: "production", Token: "secret", WatchMode: true}

	ka, err := Derive(a, ImageExtensions)
	require.NoError(t, err)
	kb, err := Derive(b, ImageExtensions)
	require.NoError(t, err)

	assert.Equal(t, ka, kb)
}

func TestDerive_Distinct(t *testing.T) {
	base := config.Config{ProjectID: "abc123", Dataset: "production"}

	tests := []struct {
		name string
		cfg  config.Config
		ns   Namespace
	}{
		{"other dataset", config.Config{ProjectID: "abc123", Dataset: "staging"}, ImageExtensions},
		{"other project", config.Config{ProjectID: "xyz789", Dataset: "production"}, ImageExtensions},
		{"overlay drafts", config.Config{ProjectID: "abc123", Dataset: "production", OverlayDrafts: true}, ImageExtensions},
		{"other namespace", base, Documents},
		{"shifted boundary", config.Config{ProjectID: "abc12", Dataset: "3production"}, ImageExtensions},
	}

	baseKey, err := Derive(base, ImageExtensions)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Derive(tt.cfg, tt.ns)
			require.NoError(t, err)
			assert.NotEqual(t, baseKey, got)
		})
	}
}

func TestDerive_IncompleteConfig(t *testing.T) {
	_, err := Derive(config.Config{Dataset: "production"}, ImageExtensions)
	require.Error(t, err)

	_, err = Derive(config.Config{ProjectID: "abc123"}, ImageExtensions)
	require.Error(t, err)
}
