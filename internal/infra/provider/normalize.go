package provider

import (
	"strings"
)

// StreetClass groups streets by their designator for width lookup and road
// network filtering.
type StreetClass string

const (
	StreetClassBoulevard StreetClass = "boulevard"
	StreetClassSquare    StreetClass = "square"
	StreetClassStreet    StreetClass = "street"
)

// Designator tokens stripped from street names. Both the Bulgarian
// abbreviations and the spelled out forms appear in extracted text, plus
// the English equivalents from mixed-language sources.
var streetPrefixes = map[string]StreetClass{
	"ул":       StreetClassStreet,
	"ул.":      StreetClassStreet,
	"улица":    StreetClassStreet,
	"бул":      StreetClassBoulevard,
	"бул.":     StreetClassBoulevard,
	"булевард": StreetClassBoulevard,
	"пл":       StreetClassSquare,
	"пл.":      StreetClassSquare,
	"площад":   StreetClassSquare,
	"st":       StreetClassStreet,
	"st.":      StreetClassStreet,
	"str":      StreetClassStreet,
	"str.":     StreetClassStreet,
	"street":   StreetClassStreet,
	"blvd":     StreetClassBoulevard,
	"blvd.":    StreetClassBoulevard,
	"boulevard": StreetClassBoulevard,
	"sq":       StreetClassSquare,
	"sq.":      StreetClassSquare,
	"square":   StreetClassSquare,
}

var quoteReplacer = strings.NewReplacer(
	"„", "", "“", "", "”", "", "«", "", "»", "",
	"‘", "", "’", "", "‚", "", "\"", "", "'", "",
)

// NormalizeStreetName lowercases the name, strips quote characters and any
// leading designator tokens, and collapses whitespace. The result is stable
// under repeated application, so cache keys and upstream queries agree.
func NormalizeStreetName(name string) string {
	normalized, _ := normalizeStreet(name)

	return normalized
}

// ClassifyStreet reports the street class derived from the leading
// designator. Names without a recognized designator default to a street.
func ClassifyStreet(name string) StreetClass {
	_, class := normalizeStreet(name)

	return class
}

func normalizeStreet(name string) (string, StreetClass) {
	lowered := strings.ToLower(quoteReplacer.Replace(name))
	fields := strings.Fields(lowered)

	class := StreetClassStreet
	for len(fields) > 0 {
		prefixClass, ok := streetPrefixes[fields[0]]
		if !ok {
			break
		}
		class = prefixClass
		fields = fields[1:]
	}

	return strings.Join(fields, " "), class
}
