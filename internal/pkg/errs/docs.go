// Package errs provides the error types shared by the production service.
//
// Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) with a
// struct that carries the offending parameter and an optional cause. Callers
// classify failures with errors.Is against the sentinel and extract details with
// errors.As against the struct:
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    return ctx.JSON(http.StatusNotFound, ...)
//	}
//
// ValueIsInvalidError also unwraps to its cause, which lets domain sentinels such
// as order.ErrIllegalTransition travel inside it and still match errors.Is.
package errs
