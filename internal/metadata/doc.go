// Package metadata validates package metadata documents against the fixed
// distribution schema.
//
// The schema is a static table of [Rule] values. Each rule names a field,
// whether it is required, and the [Shape] its value must have. Shapes are
// plain data (string, list, mapping or any value, with an optional [Check]
// on strings and mapping keys) and are evaluated by one generic checker, so
// the table can be listed and described as well as enforced.
//
// Validation collects every violation in one pass and never fails for a
// well-formed document; only a document that is not an object is an error:
//
//	doc, err := metadata.Decode(data, metadata.FormatJSON)
//	if err != nil {
//		return err // not parseable
//	}
//	result, err := metadata.New().Validate(doc)
//	if err != nil {
//		return err // errors.Is(err, metadata.ErrMalformedDocument)
//	}
//	if !result.Valid() {
//		// result.Issues lists each violation
//	}
//
// Fields not in the schema are ignored unless the validator is created with
// [WithStrict].
package metadata
