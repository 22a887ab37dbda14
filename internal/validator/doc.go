// Package validator provides the shared validation result model for distcheck.
//
// It defines types for representing validation issues (errors, warnings,
// info) and a [Reporter] that renders a batch of per-file outcomes.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes between blocking errors and non-blocking warnings.
//   - [Code]: Classifies an error (missing field, wrong type, invalid value, unknown field).
//   - [Issue]: Represents a single validation problem with field context.
//   - [Result]: Aggregates issues in discovery order.
//   - [Entry]: The outcome for one file: a Result, or a structural error.
//
// # Basic Usage
//
//	result := &validator.Result{}
//	if _, ok := doc["Name"]; !ok {
//		result.AddViolation(validator.CodeMissingField, "Name", "is required", nil)
//	}
//
//	if !result.Valid() {
//		// handle validation failure
//	}
package validator
