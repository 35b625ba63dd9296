package parser

// Options are the pipeline toggles. Each boolean gates one stage; a parser
// instance's options are immutable after construction.
type Options struct {
	IncludeSystemColumns bool
	IncludeIndexes       bool
	IncludeConstraints   bool
	IncludeStatistics    bool
	ValidateSchema       bool
	EnrichMetadata       bool
	GenerateTags         bool
}

// DefaultOptions enables every stage except system-column passthrough.
func DefaultOptions() Options {
	return Options{
		IncludeSystemColumns: false,
		IncludeIndexes:       true,
		IncludeConstraints:   true,
		IncludeStatistics:    true,
		ValidateSchema:       true,
		EnrichMetadata:       true,
		GenerateTags:         true,
	}
}
