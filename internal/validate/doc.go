// Package validate checks buffer paths and content at the store boundary.
//
// Every failure wraps one of the sentinel errors in errors.go so callers can
// test with errors.Is:
//
//	if errors.Is(err, validate.ErrInvalidPath) {
//	    ...
//	}
package validate
