package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is swapped out in tests.
var readPassword = term.ReadPassword

// promptLine prints label and reads one trimmed line. A final line without a
// newline is still accepted.
func (c *cli) promptLine(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal and falls back
// to a plain line otherwise.
func (c *cli) promptPassword() (string, error) {
	f, ok := c.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.promptLine("Password")
	}

	fmt.Fprint(c.out, "Password: ")
	pw, err := readPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// valueOrPrompt returns value unless it is empty, in which case it asks.
func (c *cli) valueOrPrompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return c.promptLine(label)
}

func (c *cli) passwordOrPrompt(value string) (string, error) {
	if value != "" {
		return value, nil
	}
	return c.promptPassword()
}
