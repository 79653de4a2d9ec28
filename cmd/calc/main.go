// Command calc is a terminal calculator. Without flags it reads keypad input
// line by line from stdin and prints the display after each line; with
// -tape it replays a YAML tape and checks its expectation.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
)

func main() {
	tapePath := flag.String("tape", "", "replay a YAML tape instead of reading stdin")
	verbose := flag.Bool("v", false, "log every event to stderr")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	if *tapePath != "" {
		if err := replayFile(*tapePath, os.Stdout); err != nil {
			logger.Error("tape failed", zap.String("tape", *tapePath), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := repl(os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("reading input", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func replayFile(path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tape, err := calculator.LoadTape(f)
	if err != nil {
		return err
	}

	state, err := tape.Replay()
	if err != nil {
		return err
	}

	printDisplay(out, state)
	return tape.Check(state)
}

// repl applies each input line to the running state. A bad key rejects the
// whole line and leaves the state as it was.
func repl(in io.Reader, out io.Writer, logger *zap.Logger) error {
	state := calculator.Initial()
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		events, err := calculator.ParseKeys(line)
		if err != nil {
			logger.Warn("ignoring input", zap.String("line", line), zap.Error(err))
			continue
		}

		for _, e := range events {
			next := calculator.Reduce(state, e)
			logger.Debug("event applied",
				zap.String("event", e.Kind()),
				zap.Bool("changed", next != state),
			)
			state = next
		}

		printDisplay(out, state)
	}

	return scanner.Err()
}

func printDisplay(out io.Writer, s calculator.State) {
	d := calculator.Render(s)
	fmt.Fprintf(out, "%24s\n%24s\n", d.Previous, d.Current)
}
