package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	in  io.Reader = os.Stdin
	out io.Writer = os.Stdout
)

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	fmt.Fprint(out, label)
	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// PromptPassword prompts user for a secret without echoing it.
// Falls back to a plain read when stdin is not a terminal.
func PromptPassword(label string) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return PromptString(label)
	}

	fmt.Fprint(out, label)
	bytepw, err := term.ReadPassword(int(f.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(out) // New line after password input

	return strings.TrimSpace(string(bytepw)), nil
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	response, err := PromptString(label + " (y/n) ")
	if err != nil {
		return false, err
	}

	response = strings.ToLower(response)
	return response == "y" || response == "yes", nil
}
