package shape

import (
	"math"
	"strconv"
	"strings"
)

// RadiiTolerance is the absolute difference below which two corner radii are
// treated as equal when fingerprinting.
const RadiiTolerance = 0.01

// Fingerprint derives the cache key for p from its kind, fill, stroke width,
// stroke color and corner radii.
//
// Format: k=<kind>|f=<fill>|sw=<stroke width>|sc=<stroke color>|r=<radii>
// where fill is the decimal solid color, preceded by the serialized state map
// and a slash when a map is set.
func Fingerprint(p Params) string {
	var sb strings.Builder
	sb.Grow(64)
	writeBase(&sb, p)
	return sb.String()
}

// EffectFingerprint is Fingerprint extended with the overlay request and the
// overlay color, so that plain and overlay variants of one shape get distinct
// keys.
func EffectFingerprint(p Params) string {
	var sb strings.Builder
	sb.Grow(80)
	writeBase(&sb, p)
	if !p.overlay {
		sb.WriteString("|o=0")
		return sb.String()
	}
	sb.WriteString("|o=1|oc=")
	if p.hasOverlayC {
		sb.WriteString(strconv.FormatUint(uint64(p.overlayColor), 10))
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

func writeBase(sb *strings.Builder, p Params) {
	sb.WriteString("k=")
	sb.WriteString(strconv.Itoa(int(p.kind)))
	sb.WriteString("|f=")
	sb.WriteString(fillRepr(p))
	sb.WriteString("|sw=")
	sb.WriteString(strconv.Itoa(p.strokeWidth))
	sb.WriteString("|sc=")
	sb.WriteString(strconv.FormatUint(uint64(p.strokeColor), 10))
	sb.WriteString("|r=")
	sb.WriteString(radiiRepr(p))
}

func fillRepr(p Params) string {
	if p.states != nil {
		// Platforms without state fills draw the solid color instead.
		return p.states.String() + "/" + strconv.FormatUint(uint64(p.solid), 10)
	}
	return strconv.FormatUint(uint64(p.solid), 10)
}

// radiiRepr collapses a sequence of near-equal radii to its first value so it
// matches the representation of the equivalent uniform radius.
func radiiRepr(p Params) string {
	if len(p.radii) == 0 {
		return formatFloat(p.radius)
	}
	if RadiiUniform(p.radii) {
		return formatFloat(p.radii[0])
	}
	parts := make([]string, len(p.radii))
	for i, r := range p.radii {
		parts[i] = formatFloat(r)
	}
	return strings.Join(parts, ",")
}

// RadiiUniform reports whether every value lies within RadiiTolerance of the
// first one. An empty sequence is not uniform.
func RadiiUniform(radii []float64) bool {
	if len(radii) == 0 {
		return false
	}
	first := radii[0]
	for _, r := range radii[1:] {
		if math.Abs(first-r) >= RadiiTolerance {
			return false
		}
	}
	return true
}

func formatFloat(f float64) string {
	if f == 0 {
		// Folds -0 into 0.
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
