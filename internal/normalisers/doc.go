// Package normalisers turns fetched pages into domain.RawDocument values.
// Each subpackage handles one content format; html is the only one the
// collector needs.
package normalisers
