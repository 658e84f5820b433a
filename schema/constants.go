package schema

// Custom string types for type safety.
type (
	// Policy represents the normalization rule attached to a criterion.
	Policy string

	// Decision represents the categorical outcome of a site evaluation.
	Decision string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for analysis tracking.
	DatabaseBackend string

	// InputFormat represents the encoding of a site document read from stdin.
	InputFormat string
)

// All normalization policies supported.
const (
	LinearThreshold   Policy = "LinearThreshold"
	ElevationRange    Policy = "ElevationRange"
	LandCoverCategory Policy = "LandCoverCategory"
	ManualOwnership   Policy = "ManualOwnership"
)

// All decisions, from best to worst.
const (
	GoDecision     Decision = "Go"
	ReviewDecision Decision = "Review"
	NoGoDecision   Decision = "NoGo"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
	YAMLOut OutputMode = "yaml"
)

// All analysis backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All stdin formats supported.
const (
	JSONInput InputFormat = "json" // default
	YAMLInput InputFormat = "yaml"
)

// Scoring thresholds shared by the aggregator and the classifier.
const (
	SuggestionThreshold = 5.0 // rows scoring below this contribute their suggestion
	GoThreshold         = 7.0
	ReviewThreshold     = 5.0
	MaxScore            = 10.0
	MinScore            = 1.0
	UnavailableScore    = 0.0
)

// NoConcernsMessage replaces an empty suggestion list in a report.
const NoConcernsMessage = "Excellent site! No major concerns identified based on the parameters."

// AllDecisions lists decisions from best to worst.
var AllDecisions = []Decision{GoDecision, ReviewDecision, NoGoDecision}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
	YAMLOut: {},
}

// ValidDatabaseBackends lists all valid analysis backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidInputFormats lists all valid stdin formats.
var ValidInputFormats = map[InputFormat]struct{}{
	JSONInput: {},
	YAMLInput: {},
}
