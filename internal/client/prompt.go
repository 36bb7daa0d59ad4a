package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readLine prints prompt and reads one trimmed line. EOF after partial
// input returns what was read.
func (a *App) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.errOut, prompt+": "); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a secret without echo when stdin is a terminal.
func (a *App) promptSecret(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.errOut, prompt+": "); err != nil {
		return "", err
	}
	secret, err := a.readSecret()
	fmt.Fprintln(a.errOut)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(secret), "\r\n"), nil
}

// terminalSecretReader reads from the terminal without echo, falling back
// to a plain line read when stdin is piped.
func terminalSecretReader(in *bufio.Reader) func() ([]byte, error) {
	return func() ([]byte, error) {
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			return term.ReadPassword(fd)
		}
		line, err := in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return nil, err
		}
		return []byte(line), nil
	}
}
