package dbx

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes the LIKE wildcards in s so that it matches literally
// inside a pattern declared with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
