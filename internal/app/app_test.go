package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/depgraph"
	"github.com/specialistvlad/gridsheet/internal/manifest"
	"github.com/specialistvlad/gridsheet/internal/sheet"
	"github.com/specialistvlad/gridsheet/internal/wsfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumManifest = `
cell "A1" {
  formula = 5
}

cell "A2" {
  formula = "=INT(2.5)"
  type    = "float"
}

cell "B1" {
  formula = "=SUM(A1:A2)"
}
`

// runApp builds an App for cfg and runs it, returning stdout and the log.
func runApp(t *testing.T, cfg Config) (string, string, error) {
	t.Helper()
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	var out, logs bytes.Buffer
	a, err := NewApp(&out, &logs, config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	runErr := a.Run(context.Background())
	return out.String(), logs.String(), runErr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// rows splits tabwriter output into whitespace separated fields.
func rows(out string) [][]string {
	var got [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		got = append(got, strings.Fields(line))
	}
	return got
}

func TestRun_HeadlessManifest(t *testing.T) {
	// --- Arrange ---
	path := writeFile(t, "sheet.hcl", sumManifest)

	// --- Act ---
	out, logs, err := runApp(t, Config{FilePath: path, Mode: ModeHeadless, LogLevel: "debug"})

	// --- Assert ---
	require.NoError(t, err)
	want := [][]string{
		{"CELL", "TYPE", "FORMULA", "VALUE"},
		{"A1", "?", "5", "5"},
		{"A2", "F", "=INT(2.5)", "2"},
		{"B1", "?", "=SUM(A1:A2)", "7.000"},
	}
	if diff := cmp.Diff(want, rows(out)); diff != "" {
		t.Errorf("headless output mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, logs, "Manifest applied.")
}

func TestRun_CellRangeLimitsReports(t *testing.T) {
	// --- Arrange ---
	path := writeFile(t, "sheet.hcl", sumManifest+`
cell "D4" {
  formula = "=DIV(1,0)"
}
`)

	// --- Act ---
	out, _, err := runApp(t, Config{FilePath: path, Mode: ModeHeadless, Cells: "B2:A1"})
	require.NoError(t, err)
	checkOut, _, checkErr := runApp(t, Config{FilePath: path, Mode: ModeCheck, Cells: "A1:C3"})

	// --- Assert ---
	want := [][]string{
		{"CELL", "TYPE", "FORMULA", "VALUE"},
		{"A1", "?", "5", "5"},
		{"A2", "F", "=INT(2.5)", "2"},
		{"B1", "?", "=SUM(A1:A2)", "7.000"},
	}
	if diff := cmp.Diff(want, rows(out)); diff != "" {
		t.Errorf("headless output mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, checkErr)
	assert.NotContains(t, checkOut, "D4")
	assert.Contains(t, checkOut, "0 error cell(s)")
}

func TestRun_HeadlessSheetFile(t *testing.T) {
	// --- Arrange ---
	ctx := ctxlog.Discard(context.Background())
	s := sheet.New()
	require.NoError(t, s.Edit(ctx, cellref.MustParse("C3"), "=CONCAT(\"a\",\"b\")"))
	path := filepath.Join(t.TempDir(), "sheet.ws")
	require.NoError(t, wsfile.SaveFile(path, s, cellref.MustParse("C3")))

	// --- Act ---
	out, _, err := runApp(t, Config{FilePath: path, Mode: ModeHeadless})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, rows(out), []string{"C3", "?", `=CONCAT("a","b")`, "ab"})
}

func TestRun_Check(t *testing.T) {
	testCases := []struct {
		name     string
		manifest string
		wantErr  error
		wantOut  []string
	}{
		{
			name:     "clean sheet",
			manifest: sumManifest,
			wantOut:  []string{"no dependency cycles, 2 dependency edge(s), 0 error cell(s)"},
		},
		{
			name: "cycle",
			manifest: `
cell "A1" {
  formula = "=SUM(B1,1)"
}
cell "B1" {
  formula = "=SUM(A1,1)"
}
`,
			wantErr: depgraph.ErrCycle,
			wantOut: []string{"A1", "Cycle"},
		},
		{
			name: "error cells are listed",
			manifest: `
cell "D4" {
  formula = "=DIV(1,0)"
}
`,
			wantOut: []string{"D4", "DivZero", "no dependency cycles, 0 dependency edge(s), 1 error cell(s)"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "sheet.hcl", tc.manifest)

			out, _, err := runApp(t, Config{FilePath: path, Mode: ModeCheck})

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tc.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRun_ExportRoundTrip(t *testing.T) {
	// --- Arrange ---
	src := writeFile(t, "sheet.hcl", sumManifest)
	dst := filepath.Join(t.TempDir(), "export.hcl")

	// --- Act ---
	_, _, err := runApp(t, Config{FilePath: src, Mode: ModeExport, ExportPath: dst})
	require.NoError(t, err)

	// --- Assert ---
	m, err := manifest.Load(ctxlog.Discard(context.Background()), dst)
	require.NoError(t, err)
	got := make([]string, 0, len(m.Cells))
	for _, c := range m.Cells {
		got = append(got, c.At.String()+" "+c.Formula+" "+c.Override.String())
	}
	want := []string{"A1 5 auto", "A2 =INT(2.5) float", "B1 =SUM(A1:A2) auto"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported cells mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ExportToStdout(t *testing.T) {
	path := writeFile(t, "sheet.hcl", sumManifest)

	out, _, err := runApp(t, Config{FilePath: path, Mode: ModeExport, Language: "pl"})

	require.NoError(t, err)
	assert.Contains(t, out, `cell "B1" {`)
	assert.Contains(t, out, `language = "pl"`)
}

func TestRun_LoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing sheet file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.ws") },
			wantErr: "failed to load sheet",
		},
		{
			name:    "bad signature",
			path:    func(t *testing.T) string { return writeFile(t, "bad.ws", "NOTASHEET") },
			wantErr: "failed to load sheet",
		},
		{
			name:    "broken manifest",
			path:    func(t *testing.T) string { return writeFile(t, "bad.hcl", `cell "A1" {`) },
			wantErr: "failed to load manifest",
		},
		{
			name:    "bad cell address",
			path:    func(t *testing.T) string { return writeFile(t, "bad.hcl", "cell \"AA1\" {\n  formula = \"1\"\n}\n") },
			wantErr: "failed to load manifest",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runApp(t, Config{FilePath: tc.path(t), Mode: ModeHeadless})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRun_EmptySheet(t *testing.T) {
	out, logs, err := runApp(t, Config{Mode: ModeHeadless})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"CELL", "TYPE", "FORMULA", "VALUE"}}, rows(out))
	assert.Contains(t, logs, "Starting with an empty sheet.")
}

func TestRun_StrictCycles(t *testing.T) {
	path := writeFile(t, "sheet.hcl", `
cell "A1" {
  formula = "=SUM(B1,1)"
}
cell "B1" {
  formula = "=SUM(C1,1)"
}
cell "C1" {
  formula = "=SUM(B1,1)"
}
`)
	config, err := NewConfig(Config{FilePath: path, Mode: ModeHeadless, StrictCycles: true})
	require.NoError(t, err)
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, config)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))

	code, ok := a.Sheet().ErrorCode(cellref.MustParse("C1"))
	require.True(t, ok)
	assert.Equal(t, "Cycle", code.String())
}

func TestRun_MirrorConnectFailure(t *testing.T) {
	_, _, err := runApp(t, Config{Mode: ModeHeadless, MirrorURL: "not a url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start mirror")
}

func TestIsManifest(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, isManifest("grid.HCL"))
	assert.True(t, isManifest(dir))
	assert.False(t, isManifest(filepath.Join(dir, "sheet.ws")))
}
