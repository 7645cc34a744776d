package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readSecret prompts for a secret without echoing when stdin is a terminal,
// falling back to a plain line read for pipes and tests.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stdout, prompt)
	defer fmt.Fprintln(os.Stdout)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return readLine(os.Stdin)
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// secretOrPrompt returns the flag value when set, otherwise prompts.
func secretOrPrompt(flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return readSecret(prompt)
}

// parseShares turns repeated "member=value" flag entries into a map.
func parseShares(entries []string) (map[string]float64, error) {
	shares := make(map[string]float64, len(entries))
	for _, entry := range entries {
		member, value, ok := strings.Cut(entry, "=")
		member = strings.ToLower(strings.TrimSpace(member))
		if !ok || member == "" {
			return nil, fmt.Errorf("invalid share %q: expected member=value", entry)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid share %q: %q is not a number", entry, value)
		}
		shares[member] = f
	}
	return shares, nil
}
