package version

import (
	"cmp"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// versionRegex captures: 1 = first two release segments, 2 = extra release
// segments, 3 = pre-release tag, 4 = pre-release number, 5 = post number,
// 6 = dev number.
var versionRegex = regexp.MustCompile(
	`^(\d+\.\d+)((?:\.\d+)*)(?:(a|b|c|rc)(\d+(?:\.\d+)*))?(?:\.post(\d+))?(?:\.dev(\d+))?$`)

// maxMajor is the largest accepted major number; larger ones are almost
// always dates such as 2013.1.
const maxMajor = 1980

// finalTag sorts after every pre-release tag.
const finalTag = "z"

// Version is a parsed normalized version.
type Version struct {
	// Release holds the numeric release segments with trailing zeros beyond
	// the second segment removed.
	Release []int

	// PreTag is "a", "b" or "c", or empty for a final release.
	PreTag string

	// Pre holds the pre-release number segments.
	Pre []int

	post, dev       int
	hasPost, hasDev bool
}

// Parse parses s as a normalized version.
func Parse(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &Error{Input: s, Err: ErrInvalidVersion}
	}

	release, err := parseSegments(m[1]+m[2], s)
	if err != nil {
		return Version{}, err
	}
	if release[0] > maxMajor {
		return Version{}, &Error{Input: s, Reason: "huge major version number", Err: ErrInvalidVersion}
	}
	for len(release) > 2 && release[len(release)-1] == 0 {
		release = release[:len(release)-1]
	}

	v := Version{Release: release}

	if m[3] != "" {
		v.PreTag = m[3]
		if v.PreTag == "rc" {
			v.PreTag = "c"
		}
		if v.Pre, err = parseSegments(m[4], s); err != nil {
			return Version{}, err
		}
	}

	if m[5] != "" {
		if v.post, err = parseNumber(m[5], s); err != nil {
			return Version{}, err
		}
		v.hasPost = true
	}
	if m[6] != "" {
		if v.dev, err = parseNumber(m[6], s); err != nil {
			return Version{}, err
		}
		v.hasDev = true
	}

	return v, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseSegments(dotted, input string) ([]int, error) {
	parts := strings.Split(dotted, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		if len(p) > 1 && p[0] == '0' {
			return nil, &Error{
				Input:  input,
				Reason: fmt.Sprintf("leading zero in version segment %q", p),
				Err:    ErrInvalidVersion,
			}
		}
		n, err := parseNumber(p, input)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func parseNumber(s, input string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &Error{
			Input:  input,
			Reason: fmt.Sprintf("segment %q out of range", s),
			Err:    ErrInvalidVersion,
		}
	}
	return n, nil
}

// IsPrerelease reports whether v has a pre-release tag or is a development release.
func (v Version) IsPrerelease() bool {
	return v.PreTag != "" || v.hasDev
}

// Post returns the post-release number and whether one is present.
func (v Version) Post() (int, bool) {
	return v.post, v.hasPost
}

// Dev returns the development release number and whether one is present.
func (v Version) Dev() (int, bool) {
	return v.dev, v.hasDev
}

// String returns the normalized form of v.
func (v Version) String() string {
	var sb strings.Builder
	writeSegments(&sb, v.Release)
	if v.PreTag != "" {
		sb.WriteString(v.PreTag)
		writeSegments(&sb, v.Pre)
	}
	if v.hasPost {
		fmt.Fprintf(&sb, ".post%d", v.post)
	}
	if v.hasDev {
		fmt.Fprintf(&sb, ".dev%d", v.dev)
	}
	return sb.String()
}

func writeSegments(sb *strings.Builder, nums []int) {
	for i, n := range nums {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(n))
	}
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b.
func Compare(a, b Version) int {
	if c := slices.Compare(a.Release, b.Release); c != 0 {
		return c
	}

	if c := strings.Compare(a.preTag(), b.preTag()); c != 0 {
		return c
	}
	if c := slices.Compare(a.Pre, b.Pre); c != 0 {
		return c
	}

	ar, ap, ad := a.postDevKey()
	br, bp, bd := b.postDevKey()
	switch {
	case ar != br:
		return cmp.Compare(ar, br)
	case ap != bp:
		return cmp.Compare(ap, bp)
	default:
		return cmp.Compare(ad, bd)
	}
}

// Equal reports whether a and b denote the same version.
func (v Version) Equal(o Version) bool {
	return Compare(v, o) == 0
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return Compare(v, o) < 0
}

func (v Version) preTag() string {
	if v.PreTag == "" {
		return finalTag
	}
	return v.PreTag
}

// postDevKey orders the post/dev suffix: a bare dev release sorts before
// the final release, which sorts before any post release. Within one post
// release, its dev releases sort first.
func (v Version) postDevKey() (rank, post, dev int) {
	switch {
	case !v.hasPost && v.hasDev:
		return 0, 0, v.dev
	case !v.hasPost:
		return 1, 0, 0
	case v.hasDev:
		return 2, v.post, v.dev
	default:
		return 2, v.post, math.MaxInt
	}
}
