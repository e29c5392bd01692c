package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/swmaps2emlid/internal/config"
	"github.com/ginjaninja78/swmaps2emlid/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultSettings = config.CSVSettings{Delimiter: ","}

func TestRead(t *testing.T) {
	input := "Name,Timestamp,Lat,Lon,Height\n" +
		"A1,2024-06-01T12:00:00+02:00,51.5,-0.1,35.2\n" +
		"\n" +
		"A2, 2024-06-01T12:05:00+02:00 ,51.6,-0.2\n"

	table, err := Read(strings.NewReader(input), defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "timestamp", "lat", "lon", "height"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, types.Row{
		"name": "A1", "timestamp": "2024-06-01T12:00:00+02:00",
		"lat": "51.5", "lon": "-0.1", "height": "35.2",
	}, table.Rows[0])
	assert.Equal(t, "2024-06-01T12:05:00+02:00", table.Rows[1]["timestamp"])
	assert.Equal(t, "", table.Rows[1]["height"], "short rows are padded")
}

func TestRead_BOMAndQuotes(t *testing.T) {
	input := "\xEF\xBB\xBFID,\"Remarks, notes\"\n" +
		"P1,\"fence \"\"corner\"\"\"\n"

	table, err := Read(strings.NewReader(input), defaultSettings)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "remarks, notes"}, table.Headers)
	assert.Equal(t, `fence "corner"`, table.Rows[0]["remarks, notes"])
}

func TestRead_Delimiter(t *testing.T) {
	input := "name;lat;lon\nA;1,5;2,5\n"

	table, err := Read(strings.NewReader(input), config.CSVSettings{Delimiter: "semicolon"})
	require.NoError(t, err)
	assert.Equal(t, "1,5", table.Rows[0]["lat"])
}

func TestRead_HeaderOnly(t *testing.T) {
	table, err := Read(strings.NewReader("name,lat\n"), defaultSettings)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, []string{"name", "lat"}, table.Headers)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""), defaultSettings)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Read(strings.NewReader("\n\n , \n"), defaultSettings)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestRead_BadDelimiter(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n"), config.CSVSettings{Delimiter: "::"})
	assert.Error(t, err)
}

func TestCleanHeaders(t *testing.T) {
	got := CleanHeaders([]string{" Name ", "", "NAME", "name_2", "name", "Lat"})
	assert.Equal(t, []string{"name", "column_2", "name_2", "name_2_2", "name_3", "lat"}, got)
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,lat\nA,1\n"), 0o644))

	table, err := Parse(path, defaultSettings)
	require.NoError(t, err)
	assert.Equal(t, path, table.SourceFile)
	assert.Equal(t, 1, table.Len())

	_, err = Parse(filepath.Join(t.TempDir(), "missing.csv"), defaultSettings)
	assert.Error(t, err)
}
