// Package builder provides validation helpers to enforce
// parameter contracts in Constructor factories.
package builder

import "fmt"

// Domain bounds for preferential attachment.
const (
	// MinNodes is the smallest node count accepted by the generator.
	MinNodes = 1
	// MinAttachment is the smallest number of edges a new node brings.
	MinAttachment = 1
)

// methodBarabasiAlbert prefixes generator errors.
const methodBarabasiAlbert = "BarabasiAlbert"

// validateAttachment enforces n ≥ MinNodes and MinAttachment ≤ m < n.
// The generator needs at least m existing nodes to attach to.
//
// Complexity: O(1) time and space.
func validateAttachment(n, m int) error {
	if n < MinNodes {
		return fmt.Errorf("%s: n=%d < min=%d: %w", methodBarabasiAlbert, n, MinNodes, ErrConfiguration)
	}
	if m < MinAttachment || m >= n {
		return fmt.Errorf("%s: m=%d not in [%d,%d): %w", methodBarabasiAlbert, m, MinAttachment, n, ErrConfiguration)
	}

	return nil
}

// ExpectedEdges returns m·(n−m), the exact edge count of a valid BA graph,
// or 0 when (n, m) is out of range.
func ExpectedEdges(n, m int) int {
	if validateAttachment(n, m) != nil {
		return 0
	}

	return m * (n - m)
}
