package routes

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"drivedash/utils"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

const prompt = "drivedash> "

// RunShell reads command lines from in until EOF, `exit` or ctx ends.
func RunShell(ctx context.Context, c *ServiceContainer, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.Out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.Out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		args, err := SplitArgs(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.Out, color.RedString(err.Error()))
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		if err := Execute(ctx, c, args); err != nil {
			utils.LogDebug("command failed", zap.Strings("args", args), zap.Error(err))
			if !Notified(err) {
				fmt.Fprintln(c.Out, color.RedString("Error: %v", err))
			}
		}
	}
}

var errUnterminatedQuote = errors.New("unterminated quote")

// SplitArgs splits a command line on whitespace. Single or double quotes
// group words, and a backslash escapes the next character outside single
// quotes.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, inWord = r, true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
