// Command molang drives the semantic core from the command line: it loads
// a YAML module fixture (see package loader), types it, and reports
// diagnostics or dumps the resulting TAST. It plays the role tawago's
// main.go plays for the Tawa compiler -- a thin urfave/cli front end over
// a library that does the real work -- except here there's no lexer or
// parser behind it, since those are out of scope for this repository.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"molang/diag"
	"molang/loader"
	"molang/pretty"
	"molang/typer"
)

func main() {
	app := &cli.App{
		Name:  "molang",
		Usage: "semantic analyzer for the Source Language",
		ExitErrHandler: func(c *cli.Context, err error) {
			tracerr.PrintSourceColor(err)
			os.Exit(1)
		},
		Commands: []*cli.Command{
			astCommand,
			checkCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var astCommand = &cli.Command{
	Name:      "ast",
	Usage:     "dump the untyped AST loaded from a module fixture",
	ArgsUsage: "<file.yaml>",
	Action: func(c *cli.Context) error {
		file := c.Args().First()
		if file == "" {
			return tracerr.New("molang ast: missing file argument")
		}
		f, err := os.Open(file)
		if err != nil {
			return tracerr.Wrap(err)
		}
		defer f.Close()

		mod, err := loader.Load(f, file)
		if err != nil {
			return tracerr.Wrap(err)
		}
		fmt.Println(pretty.Dump(mod))
		return nil
	},
}

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "type-check a module fixture and report diagnostics",
	ArgsUsage: "<file.yaml>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "dump", Usage: "dump the typed module on success"},
		&cli.BoolFlag{Name: "no-color", Usage: "disable ANSI colors in diagnostics"},
	},
	Action: func(c *cli.Context) error {
		file := c.Args().First()
		if file == "" {
			return tracerr.New("molang check: missing file argument")
		}
		f, err := os.Open(file)
		if err != nil {
			return tracerr.Wrap(err)
		}
		defer f.Close()

		mod, err := loader.Load(f, file)
		if err != nil {
			return tracerr.Wrap(err)
		}

		typed, dups, diags := typer.CheckModule(mod)
		for _, dup := range dups {
			fmt.Fprintf(os.Stderr, "warning: %s: duplicate declaration of %v, keeping the first one\n", dup.Pos(), dup.Path())
		}

		if diags.HasErrors() {
			color := !c.Bool("no-color")
			for _, e := range diags.Errors {
				fmt.Println(diag.Render(e, color, sourceLine(file, e)))
			}
			return cli.Exit("", 1)
		}

		fmt.Println("ok")
		if c.Bool("dump") {
			fmt.Println(pretty.Dump(typed))
		}
		return nil
	},
}

// sourceLine best-effort reads a single line out of file for a
// diagnostic's caret display. YAML fixtures don't carry the Source
// Language's own text, so this renders the fixture's own file -- good
// enough to show which line of the description the error came from -- and
// returns "" if the line can't be found, which diag.Render treats as "no
// context available".
func sourceLine(file string, e *diag.Error) string {
	f, err := os.Open(file)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		if n == e.Pos.Min.Line {
			return scanner.Text()
		}
	}
	return ""
}
