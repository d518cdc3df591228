// Command cmb2parse compiles a grammar description and parses input
// against it, printing the collected tree as indented text or JSON.
// Grounded on original_source's src/tool/cmb2parse/main.cpp, with its
// hand-rolled futils::cmdline::template option parser replaced by cobra/
// pflag, the idiomatic Go CLI library the rest of the retrieval pack uses.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/comb2go/comb2/driver"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cmb2parse: error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		definitionPath string
		inputPath      string
		asJSON         bool
		maxDepth       int
		maxLoop        int
		debug          bool
	)

	cmd := &cobra.Command{
		Use:           "cmb2parse",
		Short:         "Parse input against a grammar description and print the collected tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if definitionPath == "" {
				return fmt.Errorf("missing required flag: -d/--definition")
			}
			return run(definitionPath, inputPath, asJSON, maxDepth, maxLoop, debug)
		},
	}

	cmd.Flags().StringVarP(&definitionPath, "definition", "d", "", "grammar definition file (required)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input file to parse; \"-\" reads interactively from stdin")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "emit the parse tree as JSON instead of indented text")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "override the callstack depth limit (0 keeps the default)")
	cmd.Flags().IntVar(&maxLoop, "max-loop", 0, "override the rule-invocation loop limit (0 keeps the default)")
	cmd.Flags().BoolVar(&debug, "debug", false, "trace rule dispatch to stderr")

	return cmd
}

func run(definitionPath, inputPath string, asJSON bool, maxDepth, maxLoop int, debug bool) error {
	grammarSource, err := os.ReadFile(definitionPath)
	if err != nil {
		return fmt.Errorf("failed to read grammar definition %s: %w", definitionPath, err)
	}

	table, err := driver.CompileGrammar(string(grammarSource))
	if err != nil {
		return err
	}
	if maxDepth > 0 {
		table.CallstackLimit = maxDepth
	}
	if maxLoop > 0 {
		table.LoopLimit = maxLoop
	}

	d := driver.New(table)
	if debug {
		d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if inputPath == "-" && isInteractive(os.Stdin) {
		return runInteractive(d, asJSON)
	}

	var reader io.Reader = os.Stdin
	if inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input %s: %w", inputPath, err)
		}
		defer f.Close()
		reader = f
	}
	source, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return parseAndPrint(d, string(source), asJSON)
}

func runInteractive(d *driver.Driver, asJSON bool) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if err := parseAndPrint(d, line, asJSON); err != nil {
			fmt.Fprintf(os.Stderr, "cmb2parse: error: %v\n", err)
		}
	}
}

func parseAndPrint(d *driver.Driver, input string, asJSON bool) error {
	result, err := d.Parse(input)
	if err != nil {
		return err
	}
	if asJSON {
		out, err := driver.RenderJSON(result.Tree, d.Table.Desc)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Print(driver.RenderText(result.Tree, d.Table.Desc))
	return nil
}

func isInteractive(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
