package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aledsdavies/toto/pkgs/errors"
)

const stdinName = "<stdin>"

// inputPath picks the input from --file or the positional argument.
// An empty result means stdin.
func inputPath(file string, args []string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", fmt.Errorf("use either --file or a positional file, not both")
	case len(args) > 0:
		return args[0], nil
	default:
		return file, nil
	}
}

// readInput handles the 3 modes of input:
// 1. Explicit stdin with -f -
// 2. Piped input (auto-detected when no file is given)
// 3. File input
func readInput(path string, stdin io.Reader) (name string, src []byte, err error) {
	switch {
	case path == "-":
		src, err = readStdin(stdin)
		return stdinName, src, err

	case path == "":
		if !hasPipedInput(stdin) {
			return "", nil, fmt.Errorf("no input: pass a TOML file or pipe one on stdin")
		}
		src, err = readStdin(stdin)
		return stdinName, src, err
	}

	src, err = os.ReadFile(path)
	if err != nil {
		return "", nil, errors.NewInputError(path, err)
	}
	return path, nonNil(src), nil
}

func readStdin(stdin io.Reader) ([]byte, error) {
	src, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.NewInputError(stdinName, err)
	}
	return nonNil(src), nil
}

// hasPipedInput detects if there's data piped to stdin. Readers that are
// not files (tests, wrappers) always count as piped.
func hasPipedInput(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return stdin != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	// Not a character device means a pipe or a redirected file
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// nonNil keeps empty input distinct from no input
func nonNil(src []byte) []byte {
	if src == nil {
		return []byte{}
	}
	return src
}
