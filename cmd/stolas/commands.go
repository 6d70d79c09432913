package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stolas-lang/stolas/internal/diag"
	"github.com/stolas-lang/stolas/internal/parser"
	"github.com/stolas-lang/stolas/internal/resolve"
	"github.com/stolas-lang/stolas/internal/types"
)

var showWitness bool

var checkCmd = &cobra.Command{
	Use:   "check <file.stc>...",
	Short: "Validate catalog files",
	Long: `Parses and registers every declaration in the given catalog files,
reporting all parse and registration diagnostics. Exits nonzero if the
catalog is malformed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, ok := loadFiles(args)
		if !ok {
			return fmt.Errorf("catalog check failed")
		}
		fmt.Printf("ok: %d traits, %d impls\n", cat.TraitCount(), len(cat.Impls()))
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <file.stc> \"<Type>: <Trait>\"",
	Short: "Resolve a single implementation query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		receiver, ref, res, err := runQuery(args[0], args[1])
		if err != nil {
			return err
		}

		if !res.Implemented {
			fmt.Println("no")
			return nil
		}
		fmt.Println("yes")
		if showWitness && res.Witness != nil {
			fmt.Print(resolve.Explain(receiver, ref, res))
		}
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <file.stc> \"<Type>: <Trait>\"",
	Short: "Print the proof tree for a query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		receiver, ref, res, err := runQuery(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Print(resolve.Explain(receiver, ref, res))
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolVar(&showWitness, "witness", false, "print the matched impl and substitution")
}

// loadFiles parses and registers the given catalog files into a frozen
// catalog, printing every diagnostic. The boolean reports whether the
// catalog is usable.
func loadFiles(paths []string) (*resolve.Catalog, bool) {
	f := diag.NewFormatter(os.Stderr)

	var opts []resolve.Option
	if cfg.Engine.Paterson {
		opts = append(opts, resolve.WithPatersonCheck())
	}
	cat := resolve.NewCatalog(opts...)

	parseFailed := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return nil, false
		}
		src := string(data)
		f.AddSource(path, src)

		p := parser.New(src, parser.WithFilename(path))
		file := p.ParseFile()
		if diags := p.Diagnostics(); len(diags) > 0 {
			f.FormatAll(diags)
			parseFailed = true
			continue
		}
		cat.AddFile(file)
	}
	if parseFailed {
		return nil, false
	}

	freezeDiags := cat.Freeze()
	all := cat.Diagnostics()
	f.FormatAll(all)
	logger.Debug("catalog loaded",
		zap.Int("impls", len(cat.Impls())),
		zap.Int("diagnostics", len(all)),
		zap.Int("freeze_diagnostics", len(freezeDiags)))

	return cat, !diag.HasErrors(all)
}

// runQuery loads one catalog file and resolves the query string against it.
func runQuery(path, query string) (types.Type, types.TraitRef, resolve.Resolution, error) {
	cat, ok := loadFiles([]string{path})
	if !ok {
		os.Exit(2)
	}

	p := parser.New(query, parser.WithFilename("<query>"))
	recvExpr, refExpr := p.ParseQuery()
	if diags := p.Diagnostics(); len(diags) > 0 {
		f := diag.NewFormatter(os.Stderr)
		f.AddSource("<query>", query)
		f.FormatAll(diags)
		return nil, types.TraitRef{}, resolve.Resolution{}, fmt.Errorf("malformed query")
	}

	receiver, ref, diags := cat.LowerQuery(recvExpr, refExpr)
	if len(diags) > 0 {
		f := diag.NewFormatter(os.Stderr)
		f.AddSource("<query>", query)
		f.FormatAll(diags)
		return nil, types.TraitRef{}, resolve.Resolution{}, fmt.Errorf("malformed query")
	}

	engine, err := resolve.NewEngine(cat,
		resolve.WithLogger(logger),
		resolve.WithDepthLimit(cfg.Engine.DepthLimit))
	if err != nil {
		return nil, types.TraitRef{}, resolve.Resolution{}, err
	}

	res, err := engine.Implements(receiver, ref)
	if err != nil {
		return nil, types.TraitRef{}, resolve.Resolution{}, err
	}
	return receiver, ref, res, nil
}
