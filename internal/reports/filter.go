package reports

// Scope is the part of a source row that report parameters filter on.
type Scope struct {
	ProbationRegionID int64
	Service           string
}

type Scoped interface {
	Scope() Scope
}

// Filter is a side-effect free predicate built from report properties. Zero
// values match everything.
type Filter struct {
	ProbationRegionID *int64
	Service           string
}

func NewFilter(props Properties) Filter {
	return Filter{
		ProbationRegionID: props.ProbationRegionID,
		Service:           props.Service,
	}
}

func (f Filter) Match(row Scoped) bool {
	scope := row.Scope()
	if f.ProbationRegionID != nil && scope.ProbationRegionID != *f.ProbationRegionID {
		return false
	}
	if f.Service != "" && scope.Service != f.Service {
		return false
	}
	return true
}

// FilterRows returns the rows the filter matches, preserving order.
func FilterRows[T Scoped](rows []T, filter Filter) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if filter.Match(row) {
			out = append(out, row)
		}
	}
	return out
}
