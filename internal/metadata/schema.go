package metadata

import "slices"

// ShapeKind selects the variant of a Shape.
type ShapeKind int

const (
	// KindString is a string value, optionally constrained by Shape.Check.
	KindString ShapeKind = iota
	// KindList is a list whose elements all match Shape.Elem.
	KindList
	// KindMap is a mapping with string keys constrained by Shape.Key and
	// values matching Shape.Elem.
	KindMap
	// KindAny accepts any value.
	KindAny
)

// CheckKind selects the variant of a Check.
type CheckKind int

const (
	// CheckNone accepts any string.
	CheckNone CheckKind = iota
	// CheckEquals requires the string to equal Check.Arg.
	CheckEquals
	// CheckExcludes rejects strings containing any character of Check.Arg.
	CheckExcludes
	// CheckMaxLen limits the string to Check.Limit characters.
	CheckMaxLen
	// CheckCharset allows only ASCII letters, digits and punctuation, minus
	// the characters in Check.Arg.
	CheckCharset
	// CheckVersion requires a normalized version.
	CheckVersion
	// CheckPredicate requires a version predicate.
	CheckPredicate
)

// Check is a constraint applied to a string.
type Check struct {
	Kind  CheckKind
	Arg   string
	Limit int
}

// Shape describes the structure a field value must have.
type Shape struct {
	Kind  ShapeKind
	Check Check
	Key   Check
	Elem  *Shape
}

// Rule describes one recognized field.
type Rule struct {
	Name     string
	Required bool
	Shape    Shape
	// Doc is a short human description shown by the fields command.
	Doc string
}

// MetadataVersion is the only accepted value of the Metadata-Version field.
const MetadataVersion = "2.0"

// maxURILabel is the longest allowed key of the URIs mapping.
const maxURILabel = 32

// reservedExtraChars may not appear in Provides-Extras entries; they delimit
// lists in the encoded metadata form.
const reservedExtraChars = "[],"

func str(c Check) Shape { return Shape{Kind: KindString, Check: c} }

func listOf(elem Shape) Shape { return Shape{Kind: KindList, Elem: &elem} }

func mapOf(key Check, elem Shape) Shape { return Shape{Kind: KindMap, Key: key, Elem: &elem} }

var (
	plainString = str(Check{})
	stringList  = listOf(plainString)
	anyValue    = Shape{Kind: KindAny}
	predicates  = listOf(str(Check{Kind: CheckPredicate}))
)

var schema = []Rule{
	{Name: "Metadata-Version", Required: true, Shape: str(Check{Kind: CheckEquals, Arg: MetadataVersion}),
		Doc: "Version of the metadata format."},
	{Name: "Name", Required: true, Shape: str(Check{Kind: CheckExcludes, Arg: "/"}),
		Doc: "Distribution name."},
	{Name: "Version", Required: true, Shape: str(Check{Kind: CheckVersion}),
		Doc: "Distribution version."},
	{Name: "Summary", Required: true, Shape: plainString,
		Doc: "One line summary."},
	{Name: "Description", Shape: plainString,
		Doc: "Long description."},
	{Name: "Keywords", Shape: stringList,
		Doc: "Search keywords."},
	{Name: "Author", Shape: plainString,
		Doc: "Author name."},
	{Name: "Author-Email", Shape: plainString,
		Doc: "Author e-mail address (format not verified)."},
	{Name: "Maintainer", Shape: plainString,
		Doc: "Maintainer name."},
	{Name: "Maintainer-Email", Shape: plainString,
		Doc: "Maintainer e-mail address (format not verified)."},
	{Name: "License", Shape: plainString,
		Doc: "License text or identifier."},
	{Name: "Classifiers", Shape: stringList,
		Doc: "Trove classifiers."},
	{Name: "URIs", Shape: mapOf(Check{Kind: CheckMaxLen, Limit: maxURILabel}, plainString),
		Doc: "Labelled project URIs (URI syntax not verified)."},
	{Name: "Platforms", Shape: stringList,
		Doc: "Platforms the distribution runs on."},
	{Name: "Supported-Platforms", Shape: stringList,
		Doc: "Platforms for binary distributions."},
	{Name: "Provides-Extras", Shape: listOf(str(Check{Kind: CheckCharset, Arg: reservedExtraChars})),
		Doc: "Optional feature names."},
	{Name: "Setup-Requires-Dists", Shape: predicates,
		Doc: "Distributions needed to build this one."},
	{Name: "Requires-Dists", Shape: predicates,
		Doc: "Runtime dependencies."},
	{Name: "Provides-Dists", Shape: predicates,
		Doc: "Distributions contained in this one."},
	{Name: "Obsoletes-Dists", Shape: predicates,
		Doc: "Distributions this one renders obsolete."},
	{Name: "Requires-Python", Shape: plainString,
		Doc: "Supported Python versions."},
	{Name: "Requires-Externals", Shape: stringList,
		Doc: "External (non-distribution) requirements."},
	{Name: "Extensions", Shape: mapOf(Check{}, mapOf(Check{}, anyValue)),
		Doc: "Extension data, keyed by extension then by field; values are not checked."},
}

var schemaIndex = func() map[string]int {
	idx := make(map[string]int, len(schema))
	for i, r := range schema {
		idx[r.Name] = i
	}
	return idx
}()

// Schema returns a copy of the rule table in evaluation order.
func Schema() []Rule {
	return slices.Clone(schema)
}

// Lookup returns the rule for the named field.
func Lookup(name string) (Rule, bool) {
	i, ok := schemaIndex[name]
	if !ok {
		return Rule{}, false
	}
	return schema[i], true
}
