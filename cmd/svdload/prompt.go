package main

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

var errNoFile = errors.New("no SVD file given")

// promptPath asks for the SVD file. Tab completes *.svd files in the current
// directory.
func promptPath(in io.Reader, out io.Writer) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "SVD file: ",
		AutoComplete: readline.NewPrefixCompleter(readline.PcItemDynamic(svdFiles)),
		Stdin:        io.NopCloser(in),
		Stdout:       out,
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return "", errNoFile
	} else if err != nil {
		return "", err
	}

	path := strings.TrimSpace(line)
	if len(path) == 0 {
		return "", errNoFile
	}
	return path, nil
}

func svdFiles(string) []string {
	matches, _ := filepath.Glob("*.svd")
	return matches
}
