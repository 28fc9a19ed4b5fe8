// Command tanglectl is a thin, runnable demonstration of the tangle
// package — not a product, the same role gokando's cmd/example/main.go and
// examples/*/main.go play for that repo. It builds one of a handful of
// named sample term graphs, evaluates it, and prints the formatted result,
// its dependency conditions and, with --json, its JSON form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/tangle/internal/parallel"
	"github.com/gitrdm/tangle/pkg/tangle"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "tanglectl",
		Short: "Evaluate tangle term graphs",
		Long:  "tanglectl runs the named sample term graphs shipped with the tangle package and prints their evaluated result.",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace reduction steps at debug level")

	root.AddCommand(newEvalCmd(&verbose), newListCmd(), newBatchCmd(&verbose))
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(describeScenarios())
			return nil
		},
	}
}

func newEvalCmd(verbose *bool) *cobra.Command {
	var asJSON bool
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "eval <scenario>",
		Short: "Evaluate one named scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := findScenario(args[0])
			if !ok {
				return fmt.Errorf("unknown scenario %q\n\n%s", args[0], describeScenarios())
			}

			h := tangle.NewHeap()
			term, state := s.build(h)

			opts := []tangle.EvalOption{tangle.WithMaxSteps(maxSteps)}
			if *verbose {
				logger, _ := zap.NewDevelopment()
				opts = append(opts, tangle.WithLogger(logger))
			}
			ev := tangle.NewEvaluator(h, opts...)

			result, deps := ev.Evaluate(term, state)
			return printResult(h, s, result, deps, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "also print the result's JSON form (when representable)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "abort with a step-limit signal after this many reductions (0 = unbounded)")
	return cmd
}

func printResult(h *tangle.Heap, s scenario, result tangle.Address, deps *tangle.Tree, asJSON bool) error {
	fmt.Printf("%s: %s\n", s.name, s.description)
	fmt.Printf("result: %s\n", h.Format(result))

	if h.Tag(result) == tangle.TagSignal {
		fmt.Println("unresolved:")
		for _, cond := range h.SignalConditions(result).Members() {
			fmt.Printf("  %s\n", h.Format(cond))
		}
	}

	conds := deps.Members()
	fmt.Printf("depends on %d condition(s)", len(conds))
	if len(conds) > 0 {
		fmt.Print(":")
		for _, c := range conds {
			fmt.Printf("\n  %s", h.Format(c))
		}
	}
	fmt.Println()

	if asJSON {
		body, err := h.ToJSON(result)
		if err != nil {
			fmt.Printf("json: %s\n", err)
		} else {
			fmt.Printf("json: %s\n", body)
		}
	}
	return nil
}

func newBatchCmd(verbose *bool) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <scenario> [scenario ...]",
		Short: "Evaluate several scenarios concurrently, one Heap per job",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs := make([]parallel.EvalJob, 0, len(args))
			for _, name := range args {
				s, ok := findScenario(name)
				if !ok {
					return fmt.Errorf("unknown scenario %q", name)
				}
				s := s
				jobs = append(jobs, parallel.EvalJob{
					Name: s.name,
					Run: func() (string, error) {
						h := tangle.NewHeap()
						term, state := s.build(h)
						ev := tangle.NewEvaluator(h)
						result, deps := ev.Evaluate(term, state)
						return formatOutcome(h, result, deps), nil
					},
				})
			}

			pool := parallel.NewWorkerPool(workers)
			defer pool.Shutdown()

			results, err := parallel.RunBatch(pool, jobs)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("%s: %s\n", r.Name, r.Output)
			}
			fmt.Println(pool.GetStats().String())
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = number of CPUs)")
	return cmd
}

func formatOutcome(h *tangle.Heap, result tangle.Address, deps *tangle.Tree) string {
	out := h.Format(result)
	if deps.Len() > 0 {
		out += fmt.Sprintf(" (depends on %d condition(s))", deps.Len())
	}
	return out
}
