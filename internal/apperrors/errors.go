package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that the external exchange rate provider could
// not supply a rate (network failure, non-2xx response, or unparsable payload).
// Callers decide whether to retry; no retry happens below this error.
var ErrRateUnavailable = errors.New("exchange rate unavailable")
