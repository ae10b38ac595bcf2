package config

import (
	"path/filepath"
	"testing"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_ListsSectionsWithKeys(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := writeFile(t, dir, "sources.ini", `[PayrollSystem]
path = sap.csv

[Empty]

[HRSystem]
path = zalaris.csv
`)

	// When
	registry, err := NewRegistry(path)
	require.NoError(t, err)
	profiles, err := registry.GetProfiles()

	// Then
	require.NoError(t, err)
	assert.Equal(t, []domain.SourceID{domain.SourcePayroll, domain.SourceHR}, profiles)
}

func TestGetProfile(t *testing.T) {
	dir := t.TempDir()
	registry, err := NewRegistry(writeFile(t, dir, "sources.ini", `[PayrollSystem]
path = sap.csv
schema = PayrollSystem

[Broken]
schema = HRSystem
`))
	require.NoError(t, err)

	p, err := registry.GetProfile(domain.SourcePayroll)
	require.NoError(t, err)
	assert.Equal(t, "sap.csv", p.Path)
	assert.Equal(t, domain.SourcePayroll, p.SchemaID())

	_, err = registry.GetProfile("Broken")
	assert.Error(t, err)

	_, err = registry.GetProfile("Unknown")
	assert.Error(t, err)
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}
