package bot

import "strings"

// Command is one parsed chat message. Name is lowercased and keeps its
// leading slash; Args are the whitespace-separated words after it.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a chat message into a command and its arguments.
// Messages that do not start with "/" are not commands and return ok=false.
func ParseCommand(text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, false
	}
	return Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, true
}

// Rest joins the arguments from index i onward back into free text, for
// commands whose trailing argument may contain spaces.
func (c Command) Rest(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[i:], " ")
}
