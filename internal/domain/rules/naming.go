package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
)

// FieldTypes is the fixed set of recognized entity field types.
var FieldTypes = []string{
	"id", "id-long",
	"text-short", "text-medium", "text-long", "text-very-long",
	"number-integer", "number-float", "number-decimal", "currency-amount",
	"date", "time", "date-time", "timestamp",
	"boolean", "text-indicator",
}

// RelationshipTypes is the set of accepted relationship types.
var RelationshipTypes = []string{"one", "many", "one-nofk"}

var (
	fieldTypeSet        = toSet(FieldTypes)
	relationshipTypeSet = toSet(RelationshipTypes)
)

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// IsKnownFieldType reports whether t is one of FieldTypes.
func IsKnownFieldType(t string) bool { return fieldTypeSet[t] }

// IsKnownRelationshipType reports whether t is one of RelationshipTypes.
func IsKnownRelationshipType(t string) bool { return relationshipTypeSet[t] }

// ExpectedPrimaryKey derives the conventional primary key name of an entity:
// "Order" -> "orderId", "OrderItem" -> "orderitemId".
func ExpectedPrimaryKey(entityName string) string {
	return strings.ToLower(entityName) + "Id"
}

// IsIdentifierName reports whether name consists of letters, digits and
// underscores and contains at least one letter or digit.
func IsIdentifierName(name string) bool {
	seen := false
	for _, r := range name {
		switch {
		case r == '_':
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			seen = true
		default:
			return false
		}
	}
	return seen
}

func HasIDSuffix(name string) bool   { return strings.HasSuffix(name, "Id") }
func HasDateSuffix(name string) bool { return strings.HasSuffix(name, "Date") }

// IsDateType reports whether a field type carries a date component.
func IsDateType(t string) bool { return strings.Contains(t, "date") }

// HasUpper reports whether s contains any uppercase letter.
func HasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// StartsUpper reports whether the first character of s is uppercase.
func StartsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// PascalCase proposes a PascalCase spelling of s, splitting on separators and
// camel-case boundaries: "order_item" and "orderItem" both become "OrderItem".
func PascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
	var b strings.Builder
	for _, part := range parts {
		for _, word := range camelcase.Split(part) {
			if word == "" {
				continue
			}
			r, size := utf8.DecodeRuneInString(word)
			b.WriteRune(unicode.ToUpper(r))
			b.WriteString(word[size:])
		}
	}
	return b.String()
}

// ServiceName is the display name of a service: "verb#noun", or
// "unnamed service" when either half is missing.
func ServiceName(verb, noun string) string {
	if verb == "" || noun == "" {
		return "unnamed service"
	}
	return verb + "#" + noun
}

// EntityName is the display name of an entity.
func EntityName(name string) string {
	if name == "" {
		return "unnamed entity"
	}
	return name
}
