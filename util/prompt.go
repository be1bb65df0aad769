package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// readLine reads one trimmed line from stdin. ok is false when the read
// fails or the line is empty, in which case callers fall back to their
// default.
func readLine() (string, bool) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", false
	}

	line = strings.TrimSpace(line)
	return line, line != ""
}

// PromptString asks for a line of input, returning def on an empty answer.
func PromptString(prompt, def string) string {
	fmt.Printf("%s (%s): ", prompt, def)

	if line, ok := readLine(); ok {
		return line
	}
	return def
}

// PromptYN asks a yes/no question, returning def on an empty answer.
func PromptYN(prompt string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Printf("%s (%s): ", prompt, hint)

	line, ok := readLine()
	if !ok {
		return def
	}
	return strings.EqualFold(line, "y")
}
