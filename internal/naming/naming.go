// Package naming generates section names and place identifiers. Each
// scheme is a strategy selected once per generation request, so the
// pattern choice lives in one place instead of branching at call sites.
package naming

import (
	"fmt"
	"strings"

	"github.com/seatforge/seatmap-service/internal/domain"
)

// SectionPattern selects a section naming scheme
type SectionPattern string

const (
	SectionPatternNumeric      SectionPattern = "numeric"
	SectionPatternAlphabetic   SectionPattern = "alphabetic"
	SectionPatternAlphanumeric SectionPattern = "alphanumeric"
	SectionPatternCustom       SectionPattern = "custom"
)

// PlaceIDPattern selects a place identifier scheme
type PlaceIDPattern string

const (
	PlaceIDPatternSequential PlaceIDPattern = "sequential"
	PlaceIDPatternGrid       PlaceIDPattern = "grid"
)

// sequentialWidth is the zero-pad width of sequential place counters
const sequentialWidth = 6

// SectionNamer maps a zero-based section index to a name
type SectionNamer interface {
	// Name returns the name for the index-th section
	Name(index int) (string, error)
}

// NewSectionNamer builds the namer for a pattern. customNames is consulted
// only by the custom pattern.
func NewSectionNamer(pattern SectionPattern, customNames []string) (SectionNamer, error) {
	switch pattern {
	case SectionPatternNumeric, "":
		return numericNamer{}, nil
	case SectionPatternAlphabetic:
		return alphabeticNamer{}, nil
	case SectionPatternAlphanumeric:
		return alphanumericNamer{}, nil
	case SectionPatternCustom:
		if len(customNames) == 0 {
			return nil, domain.NewConfigurationError("section_naming.custom_names", "custom pattern requires at least one name")
		}
		return customNamer{names: customNames}, nil
	default:
		return nil, domain.NewConfigurationError("section_naming.pattern", fmt.Sprintf("unknown pattern %q", pattern))
	}
}

type numericNamer struct{}

func (numericNamer) Name(index int) (string, error) {
	return fmt.Sprintf("Section %d", index+1), nil
}

type alphabeticNamer struct{}

func (alphabeticNamer) Name(index int) (string, error) {
	return Alphabetic(index), nil
}

type alphanumericNamer struct{}

// Name yields ten sections per letter band: A1..A10, B1..B10, ...
func (alphanumericNamer) Name(index int) (string, error) {
	return fmt.Sprintf("%s%d", Alphabetic(index/10), index%10+1), nil
}

type customNamer struct {
	names []string
}

func (n customNamer) Name(index int) (string, error) {
	if index >= len(n.names) {
		return "", domain.NewConfigurationError("section_naming.custom_names",
			fmt.Sprintf("section index %d exceeds the %d supplied names", index, len(n.names)))
	}
	return n.names[index], nil
}

// Alphabetic encodes a zero-based index in bijective base-26: 0 -> "A",
// 25 -> "Z", 26 -> "AA", 27 -> "AB". Bijective encoding has no "zero"
// digit, so rollover never produces the ambiguous leading-A a plain
// base-26 scheme would.
func Alphabetic(index int) string {
	n := index + 1
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// PlaceIDGenerator issues place identifiers during manifest generation.
// Implementations are stateful for the duration of one manifest build.
type PlaceIDGenerator interface {
	// Next returns the identifier for a place. sequentialIndex is the
	// global 1-based position of the place within the manifest.
	Next(section, row, seat string, sequentialIndex int) string
}

// NewPlaceIDGenerator builds the generator for a pattern. prefix is
// consulted only by the sequential pattern.
func NewPlaceIDGenerator(pattern PlaceIDPattern, prefix string) (PlaceIDGenerator, error) {
	switch pattern {
	case PlaceIDPatternSequential, "":
		return &sequentialGenerator{prefix: prefix}, nil
	case PlaceIDPatternGrid:
		return gridGenerator{}, nil
	default:
		return nil, domain.NewConfigurationError("place_generation.pattern", fmt.Sprintf("unknown pattern %q", pattern))
	}
}

type sequentialGenerator struct {
	prefix string
}

func (g *sequentialGenerator) Next(_, _, _ string, sequentialIndex int) string {
	return fmt.Sprintf("%s%0*d", g.prefix, sequentialWidth, sequentialIndex)
}

type gridGenerator struct{}

func (gridGenerator) Next(section, row, seat string, _ int) string {
	return EncodeGridID(section, row, seat)
}

// EncodeGridID joins (section, row, seat) into a single token. The token
// is reversible and collision-free as long as row and seat labels are
// free of the separator; manifest generation rejects labels that are not.
func EncodeGridID(section, row, seat string) string {
	return section + "-" + row + "-" + seat
}

// DecodeGridID recovers the (section, row, seat) triple from a grid token.
// The token is split from the right, so dashes in the section name survive
// the round trip.
func DecodeGridID(token string) (section, row, seat string, err error) {
	i := strings.LastIndex(token, "-")
	if i <= 0 {
		return "", "", "", fmt.Errorf("malformed grid place id %q", token)
	}
	seat = token[i+1:]
	rest := token[:i]
	j := strings.LastIndex(rest, "-")
	if j <= 0 {
		return "", "", "", fmt.Errorf("malformed grid place id %q", token)
	}
	return rest[:j], rest[j+1:], seat, nil
}
