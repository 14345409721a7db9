package schema

// GoldenRatio is the fixed scaling constant applied to every derived metric.
const GoldenRatio = 1.618033988749895

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the history store.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Criticality labels, highest first.
const (
	CriticalLabel = "Critical"
	HighLabel     = "High"
	ModerateLabel = "Moderate"
	LowLabel      = "Low"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultMethods returns the catalogue used when no methods are configured.
func DefaultMethods() []Method {
	return []Method{
		{Name: "top", Score: 0.99, Category: "optimal"},
		{Name: "high", Score: 0.95, Category: "advanced"},
		{Name: "mid", Score: 0.85, Category: "standard"},
		{Name: "low", Score: 0.7, Category: "baseline"},
	}
}

// DefaultLadder returns the brackets used when no ladder is configured.
// Anything below the last threshold resolves to DefaultMethodName.
func DefaultLadder() []Bracket {
	return []Bracket{
		{Threshold: 0.95, Method: "top"},
		{Threshold: 0.9, Method: "high"},
		{Threshold: 0.85, Method: "mid"},
	}
}

// DefaultMethodName is the catch-all method of the default ladder.
const DefaultMethodName = "low"

// DefaultFactors lists the factors applied when none are configured.
var DefaultFactors = []string{"keys", "depth", "numeric", "fill"}
