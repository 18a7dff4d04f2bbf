package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeName folds an identifier for fuzzy comparison: CamelCase and
// separators are removed and the result is lower-cased.
//   - "employeeId" -> "employeeid"
//   - "employee_ID" -> "employeeid"
//   - "Employee-Name" -> "employeename"
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// UpperCamel upper-cases the first rune and keeps the rest as is.
//   - "employeeDTO" -> "EmployeeDTO"
//   - "保存" -> "保存"
func UpperCamel(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// Tokenize splits a CamelCase, camelCase, snake_case or kebab-case
// identifier into its words, keeping acronyms together.
//   - "employeeID" -> ["employee", "ID"]
//   - "HTTPStatus" -> ["HTTP", "Status"]
//   - "work_experience" -> ["work", "experience"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new word begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// lower -> Upper: "employeeId" splits before 'I'
	if !unicode.IsUpper(prev) {
		return true
	}

	// end of an acronym: "HTTPStatus" splits before 'S'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
