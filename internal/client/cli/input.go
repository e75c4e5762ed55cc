package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSecret reads a line from the terminal with echo off. Tests replace it.
var readSecret = term.ReadPassword

// Prompt asks for one value on a single line ("Username: ") and returns the
// answer with surrounding blanks removed. Input that ends without a newline
// still counts as an answer; an empty stream is io.EOF.
func Prompt(in *bufio.Reader, label string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s: ", label)

	answer, err := in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && answer != "":
	default:
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// PromptSecret asks for a password without echoing it. The terminal does not
// print the newline the user typed, so one is written to w afterwards. The
// caller wipes the returned bytes.
func PromptSecret(label string, w io.Writer) ([]byte, error) {
	fmt.Fprintf(w, "%s: ", label)
	secret, err := readSecret(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return secret, nil
}
