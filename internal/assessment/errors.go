package assessment

import "github.com/m-mizutani/goerr/v2"

// Assessment errors. All are recoverable; presentation layers show them as
// warnings and let the user retry.
var (
	ErrPrecondition = goerr.New("precondition not met")
	ErrRange        = goerr.New("scale value out of range")
	ErrInvalidEnum  = goerr.New("invalid issue type")
	ErrIndex        = goerr.New("topic index out of range")
	ErrUnknownField = goerr.New("unknown field")
	ErrIO           = goerr.New("export failed")
)

// Context keys for error values
const (
	IndexKey = "index"
	FieldKey = "field"
	ValueKey = "value"
	PathKey  = "path"
)
