package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		kind    Kind
		want    string
		found   bool
	}{
		{"exact longitude", []string{"name", "lon", "lat"}, Longitude, "lon", true},
		{"long form preferred", []string{"lon", "longitude"}, Longitude, "longitude", true},
		{"elevation priority", []string{"height", "ellipsoidal height"}, Elevation, "ellipsoidal height", true},
		{"time by date alias", []string{"date", "notes"}, Time, "date", true},
		{"no partial match for exact kinds", []string{"latitude (deg)"}, Latitude, "", false},
		{"antenna by substring", []string{"name", "instrument height (meters)"}, AntennaHeight, "instrument height (meters)", true},
		{"antenna ht suffix", []string{"antenna ht [m]"}, AntennaHeight, "antenna ht [m]", true},
		{"nothing matches", []string{"foo", "bar"}, Name, "", false},
		{"empty column set", nil, Time, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.columns, tt.kind)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_AliasPriority(t *testing.T) {
	// "id" is listed before "name", regardless of column order.
	got, ok := Detect([]string{"name", "id"}, Name)
	require.True(t, ok)
	assert.Equal(t, "id", got)

	got, ok = Detect([]string{"id", "name"}, Name)
	require.True(t, ok)
	assert.Equal(t, "id", got)
}

func TestDetect_CaseInsensitive(t *testing.T) {
	got, ok := Detect([]string{"Instrument Height (Meters)"}, AntennaHeight)
	require.True(t, ok)
	assert.Equal(t, "Instrument Height (Meters)", got)

	got, ok = Detect([]string{"LATITUDE"}, Latitude)
	require.True(t, ok)
	assert.Equal(t, "LATITUDE", got)
}

func TestDetect_SubstringFirstColumnWins(t *testing.T) {
	cols := []string{"antenna height (m)", "antenna height (ft)"}
	got, ok := Detect(cols, AntennaHeight)
	require.True(t, ok)
	assert.Equal(t, "antenna height (m)", got)
}

func TestDetect_Deterministic(t *testing.T) {
	cols := []string{"name", "id", "timestamp", "time", "lat", "lon", "height", "elevation"}
	first := DetectAll(cols)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, DetectAll(cols))
	}
}

func TestDetectAll(t *testing.T) {
	d := DetectAll([]string{"name", "timestamp", "lat", "lon", "height"})

	assert.Equal(t, "name", d.Column(Name))
	assert.Equal(t, "timestamp", d.Column(Time))
	assert.Equal(t, "lat", d.Column(Latitude))
	assert.Equal(t, "lon", d.Column(Longitude))
	assert.Equal(t, "height", d.Column(Elevation))
	assert.False(t, d.Has(AntennaHeight))
	assert.Empty(t, d.Column(AntennaHeight))
}

func TestAliasTable_With(t *testing.T) {
	base := DefaultAliases()
	custom := base.With(Name, []string{" Point ", "", "LABEL"})

	assert.Equal(t, []string{"point", "label"}, custom[Name])
	assert.Equal(t, []string{"id", "name"}, base[Name], "original table must not change")
	assert.Equal(t, base[Latitude], custom[Latitude])

	got, ok := custom.Detect([]string{"id", "label"}, Name)
	require.True(t, ok)
	assert.Equal(t, "label", got)
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		got, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	got, err := ParseKind(" Antenna_Height ")
	require.NoError(t, err)
	assert.Equal(t, AntennaHeight, got)

	_, err = ParseKind("speed")
	assert.Error(t, err)
}
