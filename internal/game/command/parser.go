package command

import "strings"

// ParseResult holds the parsed command word and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the raw text after the command, inner spacing preserved.
	RawArgs string
}

// Parse splits a text line into a command word and arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty and Args is nil.
func Parse(line string) ParseResult {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	if word == "" {
		return ParseResult{}
	}
	res := ParseResult{Command: strings.ToLower(word)}
	if rest = strings.TrimSpace(rest); rest != "" {
		res.Args = strings.Fields(rest)
		res.RawArgs = rest
	}
	return res
}
