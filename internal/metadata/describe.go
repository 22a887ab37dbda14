package metadata

import "fmt"

// Describe renders the shape of a rule in words, e.g. "list of version predicates".
func Describe(s Shape) string {
	switch s.Kind {
	case KindAny:
		return "any value"
	case KindList:
		return "list of " + plural(*s.Elem)
	case KindMap:
		return "mapping of " + describeString("string", s.Key) + " to " + Describe(*s.Elem)
	default:
		return describeString("string", s.Check)
	}
}

func plural(s Shape) string {
	switch {
	case s.Kind == KindString && s.Check.Kind == CheckVersion:
		return "normalized versions"
	case s.Kind == KindString && s.Check.Kind == CheckPredicate:
		return "version predicates"
	case s.Kind == KindString:
		return describeString("strings", s.Check)
	default:
		return Describe(s) + " values"
	}
}

func describeString(noun string, c Check) string {
	switch c.Kind {
	case CheckEquals:
		return fmt.Sprintf("%s equal to %q", noun, c.Arg)
	case CheckExcludes:
		return fmt.Sprintf("%s without %q", noun, c.Arg)
	case CheckMaxLen:
		return fmt.Sprintf("%s (at most %d characters)", noun, c.Limit)
	case CheckCharset:
		return fmt.Sprintf("%s of ASCII letters, digits and punctuation except %q", noun, c.Arg)
	case CheckVersion:
		return "normalized version"
	case CheckPredicate:
		return "version predicate"
	default:
		return noun
	}
}
