package app

import (
	"testing"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		in      Config
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			in:   Config{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "en", cfg.Language)
				assert.Equal(t, "/", cfg.MirrorNamespace)
				assert.Equal(t, ModeInteractive, cfg.Mode)
			},
		},
		{
			name: "regional language tag",
			in:   Config{Language: "pl-PL"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, messages.Polish, cfg.language())
			},
		},
		{
			name: "export defaults to stdout",
			in:   Config{Mode: ModeExport},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StdoutPath, cfg.ExportPath)
			},
		},
		{
			name: "cell range",
			in:   Config{Cells: "C3:A1"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, cellref.NewRange(cellref.At(0, 0), cellref.At(2, 2)), cfg.cellRange())
			},
		},
		{
			name: "no cell range covers the grid",
			in:   Config{},
			check: func(t *testing.T, cfg *Config) {
				r := cfg.cellRange()
				assert.True(t, r.Contains(cellref.At(0, 0)))
				assert.True(t, r.Contains(cellref.At(25, 25)))
			},
		},
		{name: "bad cell range", in: Config{Cells: "A1:A27"}, wantErr: "invalid cell range"},
		{name: "unsupported language", in: Config{Language: "ja"}, wantErr: "unsupported language"},
		{name: "malformed language", in: Config{Language: "??"}, wantErr: "invalid language"},
		{name: "check without file", in: Config{Mode: ModeCheck}, wantErr: "check mode needs a sheet file"},
		{name: "unknown mode", in: Config{Mode: Mode(42)}, wantErr: "unknown mode"},
		{name: "namespace without url", in: Config{MirrorNamespace: "/sheet"}, wantErr: "mirror namespace"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "headless", ModeHeadless.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
