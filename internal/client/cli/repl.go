package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printFn writes the prompt without a newline. Test seam like printlnFn.
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	exec(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the ragdesk client.
//
// It reads a line from reader, splits it into arguments (single and double
// quotes group words) and hands them to a.exec. The loop exits on EOF, on a
// cancelled context, or when the user types "exit" or "quit".
//
// Errors returned by a.exec are usage errors (unknown command, bad flag);
// they are printed and the loop goes on. Command handlers report their own
// outcomes.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("rd %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			printlnFn()
			return
		}

		args, perr := splitArgs(line)
		if perr != nil {
			printlnFn(perr.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if err := a.exec(ctx, args); err != nil {
			printlnFn(err.Error())
		}
	}
}

// splitArgs splits a command line on whitespace. A quote at the start of a
// word groups text up to the matching quote into one argument; a quote inside
// a word is literal, so "what's" stays as typed.
func splitArgs(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		inArg bool
		quote rune
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case (r == '"' || r == '\'') && !inArg:
			quote, inArg = r, true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
