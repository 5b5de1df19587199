package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE pattern matching it anywhere.
// Wildcards in the input match literally; Postgres treats backslash as the
// default LIKE escape character.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
