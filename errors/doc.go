/*
Package errors provides semantic error types for the QueryCache library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound          = errors.New("record not found")
	    ErrInvalidInput      = errors.New("invalid input")
	    ErrUnknownField      = errors.New("unknown field")
	    ErrUnsupportedLookup = errors.New("unsupported lookup")
	    ErrMultipleRecords   = errors.New("multiple records returned")
	    ErrNoKeyMap          = errors.New("no key map found for type")
	)

Usage:

	// Check error type
	player, err := col.Get(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("player %s does not exist", "123")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("Player", "123")
	err := errors.NewUnknownFieldError("Player", "rank")
	err := errors.NewUnsupportedLookupError("icontains", "dynamodb filter expression")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
