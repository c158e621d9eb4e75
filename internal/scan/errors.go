package scan

import "errors"

var (
	// ErrPredicateArity is returned when more range predicates are
	// supplied than the table has clustering columns. A planner bug,
	// not a data condition.
	ErrPredicateArity = errors.New("scan: more range predicates than clustering columns")

	// ErrKeyValueArity is returned when a partition's key values don't
	// match the table's clustering-column count.
	ErrKeyValueArity = errors.New("scan: partition key values do not match clustering columns")

	// ErrNoReplicas is returned when a block reports zero replica
	// hosts. Silently dropping the block would change query results,
	// so scheduling aborts instead.
	ErrNoReplicas = errors.New("scan: block has no replica hosts")

	// ErrInvalidNodeCount is returned for a zero or negative concrete
	// target node count.
	ErrInvalidNodeCount = errors.New("scan: target node count must be positive")

	// ErrAllRacks is returned when the all-racks placement request
	// reaches this scheduler.
	ErrAllRacks = errors.New("scan: all-racks placement is not supported by this scheduler")
)
