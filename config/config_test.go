package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/binrel/typing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const file = `
[extraction]
require_token_order = true
object_roles = ["obj", "obl"]

[negation]
particle_tag = "NEG"

[typing]
pronouns = ["he", "she"]

[[typing.rules]]
category = "PERSON"
keywords = ["person.n.01"]

[output]
dir = "out"

[graph]
uri = "bolt://localhost:7687"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binrel.toml")
	require.NoError(t, os.WriteFile(path, []byte(file), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Extraction.RequireTokenOrder)
	assert.Equal(t, []string{"obj", "obl"}, cfg.Extraction.ObjectRoles)
	// defaults survive
	assert.Equal(t, []string{"nsubj", "nsubj:pass", "dep"}, cfg.Extraction.SubjectRoles)
	assert.True(t, cfg.Extraction.CopulaAttachment)
	assert.Equal(t, "VVINF", cfg.Extraction.ModifierTag)

	neg := cfg.Negation.Resolver()
	assert.Equal(t, "NEG", neg.ParticleTag)
	assert.Equal(t, "advmod", neg.Rel)

	assert.Equal(t, []string{"he", "she"}, cfg.Typing.Pronouns)
	require.Len(t, cfg.Typing.Rules, 1)
	assert.Equal(t, typing.Person, cfg.Typing.Rules[0].Category)

	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "types.txt", cfg.Output.TypesFile)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[extraction\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "binrel.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
