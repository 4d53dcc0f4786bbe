package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Collaborator errors
	ErrFetchFailed     = fmt.Errorf("reference fetch failed")
	ErrMalformedRecord = fmt.Errorf("malformed reference record")
	ErrStoreFailed     = fmt.Errorf("station store operation failed")

	// Command line errors
	ErrUnknownCommand  = fmt.Errorf("unknown command")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
