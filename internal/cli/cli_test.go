package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/gridsheet/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want app.Config
	}{
		{
			name: "no arguments opens an empty sheet",
			args: nil,
			want: app.Config{Language: "en", LogFormat: "text", LogLevel: "info", MirrorNamespace: "/"},
		},
		{
			name: "positional file",
			args: []string{"budget.ws"},
			want: app.Config{FilePath: "budget.ws", Language: "en", LogFormat: "text", LogLevel: "info", MirrorNamespace: "/"},
		},
		{
			name: "file flag wins over shorthand and positional",
			args: []string{"-file", "a.ws", "-f", "b.ws", "c.ws"},
			want: app.Config{FilePath: "a.ws", Language: "en", LogFormat: "text", LogLevel: "info", MirrorNamespace: "/"},
		},
		{
			name: "check mode",
			args: []string{"-check", "-lang", "pl", "-log-level", "DEBUG", "-log-format", "JSON", "grid.hcl"},
			want: app.Config{FilePath: "grid.hcl", Language: "pl", LogFormat: "json", LogLevel: "debug", Mode: app.ModeCheck, MirrorNamespace: "/"},
		},
		{
			name: "export mode",
			args: []string{"-export", "-", "-f", "s.ws"},
			want: app.Config{FilePath: "s.ws", Language: "en", LogFormat: "text", LogLevel: "info", Mode: app.ModeExport, ExportPath: "-", MirrorNamespace: "/"},
		},
		{
			name: "cell range",
			args: []string{"-headless", "-cells", "a1:c10", "s.ws"},
			want: app.Config{FilePath: "s.ws", Language: "en", LogFormat: "text", LogLevel: "info", Mode: app.ModeHeadless, Cells: "A1:C10", MirrorNamespace: "/"},
		},
		{
			name: "mirror and strict cycles",
			args: []string{"-headless", "-mirror-url", "http://localhost:3000/socket.io/", "-mirror-namespace", "/sheet", "-mirror-insecure", "-strict-cycles", "-log-file", "x.log"},
			want: app.Config{
				Language: "en", LogFormat: "text", LogLevel: "info", LogFile: "x.log", Mode: app.ModeHeadless,
				MirrorURL: "http://localhost:3000/socket.io/", MirrorNamespace: "/sheet", MirrorInsecure: true, StrictCycles: true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			require.NoError(t, err)
			assert.False(t, shouldExit)
			require.NotNil(t, cfg)
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-nope"}, wantMsg: "flag provided but not defined: -nope"},
		{name: "bad log format", args: []string{"-log-format", "xml"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud"}, wantMsg: "invalid log-level"},
		{name: "exclusive modes", args: []string{"-headless", "-check", "a.ws"}, wantMsg: "mutually exclusive"},
		{name: "too many arguments", args: []string{"a.ws", "b.ws"}, wantMsg: "too many arguments: b.ws"},
		{name: "unsupported language", args: []string{"-lang", "ja"}, wantMsg: "unsupported language"},
		{name: "check without file", args: []string{"-check"}, wantMsg: "check mode needs a sheet file"},
		{name: "bad cell range", args: []string{"-headless", "-cells", "A0:B2"}, wantMsg: "invalid cell range"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.False(t, shouldExit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-strict-cycles")
	assert.Contains(t, out.String(), "Functions:\n  CONCAT DIV FLOAT INT ")
}
