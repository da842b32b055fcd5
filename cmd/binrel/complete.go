package main

import (
	"fmt"
	"strings"
)

var commands = []string{
	"extract",
	"sentence",
	"types",
	"import-doc",
	"import-lexicon",
	"import-verbs",
	"query",
	"serve",
	"bash",
	"help",
}

var commandFlags = map[string][]string{
	"extract":  {"--out", "--db", "--graph", "--no-progress", "--lexicon", "--verbs"},
	"sentence": {"--no-color", "--lexicon", "--verbs"},
	"types":    {"--lexicon", "--verbs"},
	"query":    {"--limit", "--no-color"},
	"serve":    {"--addr", "--lexicon", "--verbs"},
}

// completeCommand handles the autocompletion requests triggered by the bash completion script.
func completeCommand(args []string, ui UI) error {
	for _, c := range getCompletions(args) {
		_, _ = fmt.Fprintln(ui.Out, c)
	}
	return nil
}

// getCompletions receives COMP_WORDS: args[0] is the binary name.
func getCompletions(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		return nil
	}

	cursorIndex := len(args) - 1
	lastWord := args[cursorIndex]

	if cursorIndex == 1 {
		return withPrefix(commands, lastWord)
	}

	if strings.HasPrefix(lastWord, "-") {
		return withPrefix(commandFlags[args[1]], lastWord)
	}

	return nil
}

func withPrefix(words []string, prefix string) []string {
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}
