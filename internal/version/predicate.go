package version

import (
	"regexp"
	"strings"
)

// Operator is a version comparison operator.
type Operator string

// Supported comparison operators.
const (
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
)

var (
	// predicateRegex captures: 1 = distribution name, 2 = remaining clauses.
	predicateRegex = regexp.MustCompile(`^(\w[\s\w-]*(?:\.\w*)*)(.*)$`)

	// clausesRegex captures the clause list, either parenthesized (1) or bare (2).
	clausesRegex = regexp.MustCompile(`^\s*\((.*)\)\s*$|^\s*(.*?)\s*$`)

	// clauseRegex captures: 1 = operator, 2 = version.
	clauseRegex = regexp.MustCompile(`^\s*(<=|>=|<|>|!=|==)\s*([^\s,]+)\s*$`)
)

// Clause is a single operator and version constraint.
type Clause struct {
	Op      Operator
	Version Version
}

// String returns the clause in canonical form, e.g. ">=1.0".
func (c Clause) String() string {
	return string(c.Op) + c.Version.String()
}

// Match reports whether v satisfies the clause.
func (c Clause) Match(v Version) bool {
	r := Compare(v, c.Version)
	switch c.Op {
	case OpLess:
		return r < 0
	case OpLessEqual:
		return r <= 0
	case OpGreater:
		return r > 0
	case OpGreaterEqual:
		return r >= 0
	case OpNotEqual:
		return r != 0
	default:
		return r == 0
	}
}

// Predicate is a parsed version predicate such as "foo (>=1.0, <2.0)".
type Predicate struct {
	// Name is the distribution name.
	Name string

	// Clauses are the version constraints; empty means any version.
	Clauses []Clause
}

// ParsePredicate parses s as a version predicate.
func ParsePredicate(s string) (Predicate, error) {
	m := predicateRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Predicate{}, &Error{
			Input:  s,
			Reason: "expected a distribution name",
			Err:    ErrInvalidPredicate,
		}
	}

	p := Predicate{Name: strings.TrimSpace(m[1])}

	cm := clausesRegex.FindStringSubmatch(strings.TrimSpace(m[2]))
	if cm == nil {
		return p, nil
	}
	list := cm[1]
	if list == "" {
		list = cm[2]
	}

	for _, raw := range strings.Split(list, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		c, err := parseClause(raw)
		if err != nil {
			return Predicate{}, &Error{
				Input:  s,
				Reason: err.Error(),
				Err:    ErrInvalidPredicate,
			}
		}
		p.Clauses = append(p.Clauses, c)
	}

	return p, nil
}

func parseClause(raw string) (Clause, error) {
	op, ver := OpEqual, strings.TrimSpace(raw)
	if m := clauseRegex.FindStringSubmatch(raw); m != nil {
		op, ver = Operator(m[1]), m[2]
	}

	v, err := Parse(ver)
	if err != nil {
		return Clause{}, err
	}
	return Clause{Op: op, Version: v}, nil
}

// Match reports whether v satisfies every clause of the predicate.
func (p Predicate) Match(v Version) bool {
	for _, c := range p.Clauses {
		if !c.Match(v) {
			return false
		}
	}
	return true
}

// String returns the predicate in canonical form.
func (p Predicate) String() string {
	if len(p.Clauses) == 0 {
		return p.Name
	}
	parts := make([]string, len(p.Clauses))
	for i, c := range p.Clauses {
		parts[i] = c.String()
	}
	return p.Name + " (" + strings.Join(parts, ", ") + ")"
}
