package shared

// Filter represents query filter options shared by list-style repository
// methods. Zero values fall back to the repository defaults.
type Filter struct {
	Limit    int
	OrderBy  string
	OrderDir string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:    100,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}
