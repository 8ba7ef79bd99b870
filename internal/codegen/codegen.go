// Package codegen suggests short codes for stations, routes and trips from
// their Vietnamese display names. Suggestions only pre-fill forms; the
// database unique keys remain the source of truth.
package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	accented = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ"
	plain    = "aaaaaaaaaaaaaaaaaeeeeeeeeeeeiiiiiooooooooooooooooouuuuuuuuuuuyyyyyd"
)

var foldVietnamese = newFolder(accented, plain)

// adminWords are administrative-unit words (thành phố, tỉnh, quận, ...) that
// prefix most place names.
var adminWords = []string{"thanh", "pho", "tinh", "huyen", "xa", "phuong", "quan", "thi", "tran", "va"}

func newFolder(from, to string) *strings.Replacer {
	src, dst := []rune(from), []rune(to)
	pairs := make([]string, 0, 2*len(src))
	for i := range src {
		pairs = append(pairs, string(src[i]), string(dst[i]))
	}
	return strings.NewReplacer(pairs...)
}

// Normalize lower-cases s and replaces Vietnamese accented letters with their
// plain Latin base, đ included. Decomposed input is composed first; combining
// marks the table does not cover are dropped.
func Normalize(s string) string {
	folded := foldVietnamese.Replace(strings.ToLower(norm.NFC.String(s)))
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, folded)
}

// Scheme describes one family of codes.
type Scheme struct {
	// Tag is prepended unless the initials already start with it.
	Tag    string
	TagSep string
	// StopWords are normalized words that carry no distinguishing information.
	StopWords []string
	// LeadingOnly drops stop words only before the first kept word.
	LeadingOnly bool
	// SuffixSep goes between the base code and the collision counter.
	SuffixSep string
}

var (
	stationScheme = Scheme{
		Tag:         "BX",
		StopWords:   []string{"ben", "xe"},
		LeadingOnly: true,
	}
	routeScheme = Scheme{
		Tag:       "ROU",
		TagSep:    "-",
		StopWords: adminWords,
		SuffixSep: "-",
	}
	tripScheme = Scheme{
		Tag:       "TR",
		TagSep:    "-",
		StopWords: adminWords,
		SuffixSep: "-",
	}
)

// Initials returns the upper-cased first letter of each word of name after
// normalisation and stop-word removal. Words split on whitespace and hyphens.
func (s Scheme) Initials(name string) string {
	words := strings.FieldsFunc(Normalize(name), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})

	stop := make(map[string]struct{}, len(s.StopWords))
	for _, w := range s.StopWords {
		stop[w] = struct{}{}
	}

	var b strings.Builder
	leading := true
	for _, w := range words {
		if _, skip := stop[w]; skip && (leading || !s.LeadingOnly) {
			continue
		}
		r, ok := firstAlnum(w)
		if !ok {
			continue
		}
		leading = false
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Base prefixes initials with the scheme tag.
func (s Scheme) Base(initials string) string {
	if initials == "" {
		return s.Tag
	}
	if s.Tag != "" && strings.HasPrefix(initials, s.Tag) {
		return initials
	}
	return s.Tag + s.TagSep + initials
}

// Unique appends a zero-padded counter to base until it is not in existing.
func (s Scheme) Unique(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[strings.TrimSpace(c)] = struct{}{}
	}
	code := base
	for n := 1; ; n++ {
		if _, ok := taken[code]; !ok {
			return code
		}
		code = fmt.Sprintf("%s%s%02d", base, s.SuffixSep, n)
	}
}

// Generate returns a unique code for name, or "" when name is empty. A name
// without usable words gets the bare tag.
func (s Scheme) Generate(name string, existing []string) string {
	if name == "" {
		return ""
	}
	return s.Unique(s.Base(s.Initials(name)), existing)
}

// StationCode: "Bến xe Hà Nội" -> "BXHN", then "BXHN01", "BXHN02", ...
func StationCode(name string, existing []string) string {
	return stationScheme.Generate(name, existing)
}

// RouteCode: ("Hồ Chí Minh", "Hà Nội") -> "ROU-HCMHN", then "ROU-HCMHN-01", ...
func RouteCode(originCity, destinationCity string, existing []string) string {
	if originCity == "" || destinationCity == "" {
		return ""
	}
	initials := routeScheme.Initials(originCity) + routeScheme.Initials(destinationCity)
	return routeScheme.Unique(routeScheme.Base(initials), existing)
}

// TripCode: "Hà Nội - Hải Phòng" -> "TR-HNHP", then "TR-HNHP-01", ...
func TripCode(routeName string, existing []string) string {
	return tripScheme.Generate(routeName, existing)
}

// RouteName joins two station names the way the route list displays them.
func RouteName(origin, destination string) string {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	switch {
	case origin == "":
		return destination
	case destination == "":
		return origin
	}
	return origin + " - " + destination
}

func firstAlnum(w string) (rune, bool) {
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r, true
		}
	}
	return 0, false
}
