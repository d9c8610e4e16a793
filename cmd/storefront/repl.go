package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"github.com/diyabansal-1605/full-stack-project/internal/logger"
)

func (a *app) repl(ctx context.Context) error {
	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetCtrlCAborts(true)
	names := commandNames()
	lin.SetCompleter(func(line string) []string {
		var out []string
		for _, n := range names {
			if strings.HasPrefix(n, line) {
				out = append(out, n)
			}
		}
		return out
	})

	a.line = lin
	defer func() { a.line = nil }()

	for ctx.Err() == nil {
		got, err := lin.Prompt(fmt.Sprintf("dukaan %s> ", a.history.Current()))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.out)
				return nil
			}
			logger.L().WithError(err).Warn("unexpected error reading prompt")
			continue
		}
		args, err := splitArgs(got)
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		lin.AppendHistory(got)

		switch args[0] {
		case "exit", "quit":
			return nil
		case "repl":
			continue
		}
		if err := a.run(ctx, args[0], args[1:]); err != nil && !isShown(err) {
			fmt.Fprintln(a.out, err)
		}
	}
	return nil
}

var errUnterminatedQuote = errors.New("unterminated quote")

// splitArgs splits a command line on white space. Single or double quotes
// group words into one argument.
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
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
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
		return nil, errUnterminatedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
