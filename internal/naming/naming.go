package naming

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator splits a key into words.
const Separator = "_"

// CompositeName appends the capitalized form of key to parent.
// Empty words between consecutive separators contribute nothing.
func CompositeName(parent, key string) string {
	var b strings.Builder

	b.Grow(len(parent) + len(key))
	b.WriteString(parent)

	for _, word := range strings.Split(key, Separator) {
		b.WriteString(Capitalize(word))
	}

	return b.String()
}

// Capitalize upper-cases the first rune and leaves the rest unchanged.
func Capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return ""
	}

	return string(unicode.ToUpper(r)) + word[size:]
}

// TypeIdent turns a composite name into a valid Go identifier.
// Runes that cannot appear in an identifier act as word breaks: they are
// dropped and the following letter is upper-cased. A leading digit gets an
// "X" prefix. The case of the first letter is preserved.
func TypeIdent(name string) string {
	var b strings.Builder

	upperNext := false

	for _, r := range name {
		if !isIdentRune(r) {
			upperNext = b.Len() > 0

			continue
		}

		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}

		b.WriteRune(r)
	}

	ident := b.String()
	if ident == "" {
		return "X"
	}

	if first, _ := utf8.DecodeRuneInString(ident); unicode.IsDigit(first) {
		ident = "X" + ident
	}

	return ident
}

// FieldIdent returns the exported Go field name for a configuration key.
func FieldIdent(key string) string {
	ident := TypeIdent(CompositeName("", key))
	if IsExported(ident) {
		return ident
	}

	if r, _ := utf8.DecodeRuneInString(ident); unicode.IsLower(r) {
		return Capitalize(ident)
	}

	return "X" + ident
}

// reservedFields are method names of generated structs.
var reservedFields = map[string]bool{
	"Equal":   true,
	"Clone":   true,
	"IsEmpty": true,
}

// FieldIdents returns unique field names for the keys of one object, in key
// order. Names that would shadow a generated method get a "Value" suffix.
func FieldIdents(keys []string) []string {
	names := make([]string, len(keys))

	for i, key := range keys {
		name := FieldIdent(key)
		if reservedFields[name] {
			name += "Value"
		}

		names[i] = name
	}

	return Dedupe(names)
}

// IsExported reports whether an identifier starts with an upper-case letter.
func IsExported(ident string) bool {
	r, _ := utf8.DecodeRuneInString(ident)
	return unicode.IsUpper(r)
}

// Unexport lower-cases the first rune of ident.
func Unexport(ident string) string {
	r, size := utf8.DecodeRuneInString(ident)
	if size == 0 {
		return ident
	}

	return string(unicode.ToLower(r)) + ident[size:]
}

// Dedupe makes names unique by appending 2, 3, ... to later duplicates.
// Order is preserved, so the first occurrence keeps its name.
func Dedupe(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]bool, len(names))

	for i, name := range names {
		candidate := name
		for n := 2; seen[candidate]; n++ {
			candidate = name + strconv.Itoa(n)
		}

		seen[candidate] = true
		out[i] = candidate
	}

	return out
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
