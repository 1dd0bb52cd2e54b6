package rebalance

import "fmt"

// ConfigurationError reports an unusable target configuration: an unknown
// volatility band, or a weight vector that does not sum to 1. It aborts the
// run before any trade is computed.
type ConfigurationError struct {
	Band   int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Band == 0 {
		return fmt.Sprintf("invalid target configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid target configuration for band %d%%: %s", e.Band, e.Reason)
}

// DataError reports an unusable holding row. Ingestion is all-or-nothing: a
// single bad row fails the whole run, because partial ingestion would corrupt
// the capital-gain math silently.
type DataError struct {
	Account    string
	Identifier string
	Reason     string
}

func (e *DataError) Error() string {
	if e.Account == "" && e.Identifier == "" {
		return fmt.Sprintf("invalid holdings data: %s", e.Reason)
	}
	return fmt.Sprintf("invalid holding %s/%s: %s", e.Account, e.Identifier, e.Reason)
}
