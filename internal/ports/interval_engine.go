package ports

import "github.com/aalvaropc/diatonic/internal/domain"

// IntervalEngine answers construct and identify queries.
type IntervalEngine interface {
	Describe(op domain.Operation, args []string) (domain.Answer, error)
}
