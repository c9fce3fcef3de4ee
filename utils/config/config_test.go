package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testConfig struct {
	CPUCount  int    `json:"cpu_count"`
	Algorithm string `json:"algorithm"`
}

func TestLoad(t *testing.T) {
	ass := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"cpu_count": 3, "algorithm": "RR"}`), 0o644)
	ass.NoError(err)

	var cfg testConfig
	ass.NoError(Load(path, &cfg))
	ass.Equal(3, cfg.CPUCount)
	ass.Equal("RR", cfg.Algorithm)
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	assert.Error(t, Load(filepath.Join(t.TempDir(), "nope.json"), &cfg))
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"cpu_count": `), 0o644))

	var cfg testConfig
	assert.Error(t, Load(path, &cfg))
}
