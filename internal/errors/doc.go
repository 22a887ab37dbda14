// Package errors provides error handling conventions for the distcheck CLI.
//
// It re-exports the wrapping helpers of github.com/cockroachdb/errors
// ([New], [Newf], [Wrap], [Is], [As], ...) so the rest of the code base
// imports a single errors package, and adds an [ExitError] type carrying a
// process exit code.
//
// # Exit Codes
//
//   - ExitSuccess (0): every document passed
//   - ExitUser (1): a document failed validation, or invalid input/configuration
//   - ExitSystem (2): an unexpected system failure
//
// # ExitError
//
//	err := errors.NewUserError(errors.ErrValidationFailed, "")
//	os.Exit(errors.ExitCode(err))
package errors
