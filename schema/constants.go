package schema

// Custom string types for type safety.
type (
	// CurveKind selects how consecutive points of a series are joined.
	CurveKind string

	// ScaleKind tells whether an axis carries plain numbers or epoch-millisecond timestamps.
	ScaleKind string

	// WrapPolicy controls what point navigation does at either end of a series.
	WrapPolicy string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and run tracking.
	DatabaseBackend string

	// InputFormat represents the file format of series and sample inputs.
	InputFormat string
)

// All curve kinds supported.
const (
	LinearCurve   CurveKind = "linear" // default
	MonotoneCurve CurveKind = "monotone"
	StepCurve     CurveKind = "step"
	NaturalCurve  CurveKind = "natural"
)

// All scale kinds supported.
const (
	LinearScale   ScaleKind = "linear" // default
	TemporalScale ScaleKind = "temporal"
)

// All wrap policies supported.
const (
	ClampWrap WrapPolicy = "clamp" // default
	CycleWrap WrapPolicy = "wrap"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All input formats supported.
const (
	JSONInput    InputFormat = "json"
	CSVInput     InputFormat = "csv"
	ParquetInput InputFormat = "parquet"
	XLSXInput    InputFormat = "xlsx"
)

// ValidCurveKinds lists all valid curve kinds.
var ValidCurveKinds = map[CurveKind]struct{}{
	LinearCurve:   {},
	MonotoneCurve: {},
	StepCurve:     {},
	NaturalCurve:  {},
}

// ValidScaleKinds lists all valid scale kinds.
var ValidScaleKinds = map[ScaleKind]struct{}{
	LinearScale:   {},
	TemporalScale: {},
}

// ValidWrapPolicies lists all valid wrap policies.
var ValidWrapPolicies = map[WrapPolicy]struct{}{
	ClampWrap: {},
	CycleWrap: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllCurveKinds returns the curve kinds in display order.
var AllCurveKinds = []CurveKind{LinearCurve, MonotoneCurve, StepCurve, NaturalCurve}

// ValidInputFormats lists all valid input formats.
var ValidInputFormats = map[InputFormat]struct{}{
	JSONInput:    {},
	CSVInput:     {},
	ParquetInput: {},
	XLSXInput:    {},
}
