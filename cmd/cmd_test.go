package cmd

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/swmaps2emlid/internal/app"
	"github.com/ginjaninja78/swmaps2emlid/internal/config"
	"github.com/ginjaninja78/swmaps2emlid/internal/emlid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

const sample = "Name,Timestamp,Lat,Lon,Height,Instrument Ht\n" +
	"A1,2024-06-01 12:00:00 UTC+02:00,51.5,-0.1,35.2,1.8\n" +
	"A2,garbage,51.6,-0.2,36.0,1.8\n"

func TestConvert_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "points.csv", sample)
	output := filepath.Join(dir, "out", "result.csv")

	stdout, _, err := execute(t, "convert", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Success: Conversion complete.\nSaved as:\n"+output)

	rows := readCSV(t, output)
	require.Len(t, rows, 3)
	assert.Equal(t, emlid.Header[:], rows[0])
	assert.Equal(t, "A1", rows[1][emlid.Name])
	assert.Equal(t, "1.8", rows[1][emlid.AntennaHeight])
	assert.Equal(t, "2024-06-01 12:00:00.000 UTC+02:00", rows[1][emlid.AveragingStart])
	assert.Empty(t, rows[2][emlid.AveragingStart])
}

func TestConvert_DefaultOutputBesideInput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "points.csv", sample)

	_, _, err := execute(t, "convert", input)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "emlid.csv"))
}

func TestConvert_OutputNameFromConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "points.csv", sample)
	cfgPath := writeFile(t, dir, "cfg.yaml", "output_name: \"{original}_emlid\"\n")

	_, _, err := execute(t, "--config", cfgPath, "convert", input)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "points_emlid.csv"))
}

func TestConvert_DefaultOutputWouldReplaceInput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "emlid.csv", sample)

	_, stderr, err := execute(t, "convert", input)
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrOutputIsInput)
	assert.Contains(t, stderr, "output path is the input file")

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
}

func TestConvert_NoInputIsCancellation(t *testing.T) {
	stdout, _, err := execute(t, "convert")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cancelled: No input file selected. Exiting.")
}

func TestConvert_Failure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	_, stderr, err := execute(t, "convert", missing, "-o", filepath.Join(t.TempDir(), "o.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, stderr, "Error: An error occurred: ")
}

func TestConvert_DelimiterFlag(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "points.csv", "name;lat;lon\nP1;1.5;2.5\n")
	output := filepath.Join(dir, "emlid.csv")

	_, _, err := execute(t, "convert", input, "--delimiter", "semicolon", "-o", output)
	require.NoError(t, err)

	rows := readCSV(t, output)
	require.Len(t, rows, 2)
	assert.Equal(t, "P1", rows[1][emlid.Name])
	assert.Equal(t, "1.5", rows[1][emlid.Latitude])
	assert.Equal(t, "2.5", rows[1][emlid.Longitude])
}

func TestConvert_InvalidDelimiterFlag(t *testing.T) {
	input := writeFile(t, t.TempDir(), "points.csv", sample)

	_, _, err := execute(t, "convert", input, "--delimiter", "ab")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRoot_ExplicitConfigMustExist(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestRoot_VerboseLogsJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "points.csv", sample)

	_, stderr, err := execute(t, "-v", "--log-format", "json", "convert", input)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"field detected"`)
	assert.Contains(t, stderr, `"run_id":`)
}

func TestInspect(t *testing.T) {
	input := writeFile(t, t.TempDir(), "points.csv", sample)

	stdout, _, err := execute(t, "inspect", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rows:    2")
	assert.Regexp(t, `time\s+timestamp`, stdout)
	assert.Regexp(t, `antenna_height\s+instrument ht`, stdout)
	assert.Contains(t, stdout, "Timestamps: 1 parsed, 1 invalid")
}

func TestInspect_ConfiguredAliases(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "points.csv", "Point,Lat\nP1,1\n")
	cfgPath := writeFile(t, dir, "cfg.yaml", "aliases:\n  name: [point]\n")

	stdout, _, err := execute(t, "--config", cfgPath, "inspect", input)
	require.NoError(t, err)
	assert.Regexp(t, `name\s+point`, stdout)
	assert.Regexp(t, `longitude\s+-`, stdout)
	assert.Contains(t, stdout, "Timestamps: no time column")
}

func TestInspect_RequiresInput(t *testing.T) {
	_, _, err := execute(t, "inspect")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SW Maps to Emlid Converter")
	assert.Contains(t, stdout, "Version:    "+Version)
}
