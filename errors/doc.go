/*
Package errors provides the semantic error taxonomy shared by every adapter
in the library.

All adapters report failures the same way: validation problems fail fast with
a ValidationError, missing preconditions surface as PreconditionError, and
every underlying service failure is classified as either transient (worth
repeating) or permanent. Absence of data is never reported as a raw service
error.

Common Errors:

	var (
	    ErrNotFound           = errors.New("not found")
	    ErrInvalidInput       = errors.New("invalid input")
	    ErrPreconditionFailed = errors.New("precondition failed")
	    ErrTransient          = errors.New("transient failure")
	    ErrPermanent          = errors.New("permanent failure")
	)

Usage:

	item, err := tbl.Get(ctx, key)
	if err != nil {
	    if errors.IsTransient(err) {
	        // safe to repeat the call
	    }
	    return err
	}
	if item == nil {
	    // absent, not an error
	}

Classify wraps provider errors into the taxonomy; throttling and server
faults become transient, everything else permanent.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
