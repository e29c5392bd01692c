// =============================================================================
// SW Maps to Emlid Converter - Column Detector
// =============================================================================
//
// This module identifies which input column carries each semantic field.
// Survey point exports name their columns inconsistently ("Lat", "latitude",
// "Instrument Height (m)", ...), so every field has an ordered list of
// accepted aliases.
//
// MATCHING RULES:
//   - Column names are compared lowercased.
//   - Aliases are tried in priority order; the first alias present wins.
//   - Exact kinds require the column to equal the alias.
//   - Substring kinds accept any column containing the alias. Among several
//     such columns the first one in file order wins.
//   - At most one column is selected per field.
//
// =============================================================================

package fields

import (
	"fmt"
	"strings"
)

// =============================================================================
// FIELD KINDS
// =============================================================================

// Kind is a semantic field of a survey point.
type Kind int

const (
	Name Kind = iota
	Time
	Longitude
	Latitude
	Elevation
	AntennaHeight
)

// Kinds lists every field kind in detection order.
var Kinds = []Kind{Name, Time, Longitude, Latitude, Elevation, AntennaHeight}

var kindNames = map[Kind]string{
	Name:          "name",
	Time:          "time",
	Longitude:     "longitude",
	Latitude:      "latitude",
	Elevation:     "elevation",
	AntennaHeight: "antenna_height",
}

// String returns the configuration key of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a configuration key such as "longitude" to its Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

// MatchMode selects how an alias is compared to a column name.
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchSubstring
)

// Mode returns the match mode used for the kind. Antenna height columns
// usually carry a unit suffix, so they are matched by containment.
func (k Kind) Mode() MatchMode {
	if k == AntennaHeight {
		return MatchSubstring
	}
	return MatchExact
}

// =============================================================================
// ALIAS TABLE
// =============================================================================

// AliasTable maps each kind to its aliases in priority order.
type AliasTable map[Kind][]string

// DefaultAliases returns a fresh copy of the built-in alias table.
func DefaultAliases() AliasTable {
	return AliasTable{
		Name:          {"id", "name"},
		Time:          {"time", "timestamp", "date"},
		Longitude:     {"longitude", "lon"},
		Latitude:      {"latitude", "lat"},
		Elevation:     {"elevation", "ellipsoidal height", "height"},
		AntennaHeight: {"instrument ht", "instrument height", "antenna height", "antenna ht"},
	}
}

// With returns a copy of the table with the aliases of kind replaced.
// Aliases are lowercased and trimmed; blanks are dropped.
func (a AliasTable) With(kind Kind, aliases []string) AliasTable {
	out := make(AliasTable, len(a)+1)
	for k, v := range a {
		out[k] = append([]string(nil), v...)
	}
	cleaned := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" {
			cleaned = append(cleaned, alias)
		}
	}
	out[kind] = cleaned
	return out
}

// Detect returns the column selected for kind, if any.
func (a AliasTable) Detect(columns []string, kind Kind) (string, bool) {
	aliases := a[kind]

	if kind.Mode() == MatchSubstring {
		for _, alias := range aliases {
			for _, col := range columns {
				if strings.Contains(strings.ToLower(col), alias) {
					return col, true
				}
			}
		}
		return "", false
	}

	for _, alias := range aliases {
		for _, col := range columns {
			if strings.ToLower(col) == alias {
				return col, true
			}
		}
	}
	return "", false
}

// DetectAll runs detection for every kind.
func (a AliasTable) DetectAll(columns []string) Detection {
	d := make(Detection, len(Kinds))
	for _, kind := range Kinds {
		if col, ok := a.Detect(columns, kind); ok {
			d[kind] = col
		}
	}
	return d
}

// Detect uses the default alias table.
func Detect(columns []string, kind Kind) (string, bool) {
	return DefaultAliases().Detect(columns, kind)
}

// DetectAll uses the default alias table.
func DetectAll(columns []string) Detection {
	return DefaultAliases().DetectAll(columns)
}

// =============================================================================
// DETECTION RESULT
// =============================================================================

// Detection holds the column chosen for each matched kind. Unmatched kinds
// are absent.
type Detection map[Kind]string

// Column returns the detected column for kind, or "" when unmatched.
func (d Detection) Column(kind Kind) string {
	return d[kind]
}

// Has reports whether kind was matched.
func (d Detection) Has(kind Kind) bool {
	_, ok := d[kind]
	return ok
}
