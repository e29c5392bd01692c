// Package emlid defines the fixed point-import schema of Emlid Flow.
//
// Every record has exactly FieldCount columns in the order of Header. The
// column set never depends on the input file.
package emlid

// Column indices into a Record, in output order.
const (
	Name = iota
	Code
	Easting
	Northing
	Elevation
	Description
	Longitude
	Latitude
	EllipsoidalHeight
	Origin
	EastingRMS
	NorthingRMS
	ElevationRMS
	LateralRMS
	AntennaHeight
	AntennaHeightUnits
	SolutionStatus
	CorrectionType
	AveragingStart
	AveragingEnd
	Samples
	PDOP
	GDOP
	BaseEasting
	BaseNorthing
	BaseElevation
	BaseLongitude
	BaseLatitude
	BaseEllipsoidalHeight
	Baseline
	MountPoint
	CSName
	GPSSatellites
	GLONASSSatellites
	GalileoSatellites
	BeiDouSatellites
	QZSSSatellites

	// FieldCount is the number of columns in the schema.
	FieldCount
)

// Constant values written for every point.
const (
	DefaultSamples            = "1"
	DefaultAntennaHeightUnits = "m"
)

// Header is the output header row.
var Header = [FieldCount]string{
	"Name", "Code", "Easting", "Northing", "Elevation", "Description", "Longitude", "Latitude",
	"Ellipsoidal height", "Origin", "Easting RMS", "Northing RMS", "Elevation RMS", "Lateral RMS",
	"Antenna height", "Antenna height units", "Solution status", "Correction type", "Averaging start",
	"Averaging end", "Samples", "PDOP", "GDOP", "Base easting", "Base northing", "Base elevation",
	"Base longitude", "Base latitude", "Base ellipsoidal height", "Baseline", "Mount point",
	"CS name", "GPS Satellites", "GLONASS Satellites", "Galileo Satellites", "BeiDou Satellites",
	"QZSS Satellites",
}

// Record is one output point. Unset columns are empty strings.
type Record [FieldCount]string

// NewRecord returns a record with the per-point constants filled in.
func NewRecord() Record {
	var r Record
	r[Samples] = DefaultSamples
	r[AntennaHeightUnits] = DefaultAntennaHeightUnits
	return r
}

// Slice returns the record as a string slice for CSV encoding.
func (r Record) Slice() []string {
	return r[:]
}

// Get returns the value of the named column, or "" if the name is not part
// of the schema.
func (r Record) Get(column string) string {
	for i, h := range Header {
		if h == column {
			return r[i]
		}
	}
	return ""
}
