package store

import "strings"

// escapeLike appends to every LIKE so user text matches literally.
const escapeLike = ` ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern lowercases s and wraps it for a case-insensitive substring match.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func prefixPattern(s string) string {
	return likeEscaper.Replace(strings.ToLower(s)) + "%"
}
