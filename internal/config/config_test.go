package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shiftplan/internal/core/allocation"
	"github.com/example/shiftplan/internal/core/roster"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"flat_printing", "letterpress_printing", "inkjet_printing"}, cfg.Professions)
	assert.Equal(t, "shiftplan.db", filepath.Base(cfg.Database))
	assert.NoError(t, cfg.Validate())

	rounds, err := cfg.Rounds()
	require.NoError(t, err)
	assert.Equal(t, allocation.DefaultRounds, rounds)
}

func TestParse_OverridesDefaults(t *testing.T) {
	data := []byte(`
professions: [inkjet_printing, flat_printing]
database: /tmp/plan.db
vacancy_marker: "(none)"
allocation:
  rounds:
    - {mode: exact, shift: night}
    - {mode: any, shift: day}
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []roster.Profession{"inkjet_printing", "flat_printing"}, cfg.ProfessionList())
	assert.Equal(t, "/tmp/plan.db", cfg.Database)
	assert.Equal(t, "(none)", cfg.VacancyMarker)
	assert.Equal(t, "output", cfg.OutputDir, "unset fields keep defaults")

	rounds, err := cfg.Rounds()
	require.NoError(t, err)
	assert.Equal(t, []allocation.Round{
		{Mode: allocation.ModeExact, Source: roster.ShiftNight},
		{Mode: allocation.ModeAnyQualified, Source: roster.ShiftDay},
	}, rounds)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown mode", "allocation:\n  rounds:\n    - {mode: closest, shift: day}\n"},
		{"unknown shift", "allocation:\n  rounds:\n    - {mode: exact, shift: weekend}\n"},
		{"duplicate profession", "professions: [a, a]\n"},
		{"empty professions", "professions: []\n"},
		{"bad log level", "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_UnknownModeKeepsCause(t *testing.T) {
	_, err := Parse([]byte("allocation:\n  rounds:\n    - {mode: closest, shift: day}\n"))
	assert.ErrorIs(t, err, allocation.ErrUnknownMode)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("databse: typo.db\n"))
	assert.Error(t, err)
}

func TestParse_ExpandsHome(t *testing.T) {
	cfg, err := Parse([]byte("database: ~/plans/shiftplan.db\n"))
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "plans", "shiftplan.db"), cfg.Database)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.OutputDir = filepath.Join(dir, "docs")
	cfg.MetricsTextfile = filepath.Join(dir, "shiftplan.prom")

	require.NoError(t, SaveConfig(dir, cfg))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.OutputDir, loaded.OutputDir)
	assert.Equal(t, cfg.MetricsTextfile, loaded.MetricsTextfile)
	assert.Equal(t, cfg.Professions, loaded.Professions)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.OutputDir)
}
