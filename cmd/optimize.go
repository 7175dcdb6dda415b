package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"promptforge/pkg/config"
	"promptforge/pkg/history"
	"promptforge/pkg/logging"
	"promptforge/pkg/optimizer"
	"promptforge/pkg/policy"
)

var (
	optTarget    string
	optScenario  string
	optDiff      bool
	optJSON      bool
	optExplain   bool
	optNoHistory bool
	optStateDir  string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [text]",
	Short: "Rewrite a rough prompt into a structured one",
	Long: `Optimize rewrites a rough task description for the chosen target and
scenario. With no argument (or "-"), the text is read from stdin.

The optimized prompt is printed to stdout; warnings go to stderr. Tuned
weights learned from history are persisted for the next run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&optTarget, "target", "t", "chat", "target consumer: chat, code, research, or local")
	optimizeCmd.Flags().StringVarP(&optScenario, "scenario", "s", "general", "usage scenario: general, software-build, code-cli, json-api, research, creative-writing, or tool-agent")
	optimizeCmd.Flags().BoolVar(&optDiff, "diff", false, "show a diff between input and output")
	optimizeCmd.Flags().BoolVar(&optJSON, "json", false, "emit the full result as JSON")
	optimizeCmd.Flags().BoolVar(&optExplain, "explain", false, "print the score breakdown")
	optimizeCmd.Flags().BoolVar(&optNoHistory, "no-history", false, "do not read or update history and learned weights")
	optimizeCmd.Flags().StringVar(&optStateDir, "state-dir", "", "state directory (default ~/.promptforge)")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	target, err := policy.ParseTarget(optTarget)
	if err != nil {
		return err
	}
	scenario, err := policy.ParseScenario(optScenario)
	if err != nil {
		return err
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	stateDir := optStateDir
	if stateDir == "" {
		stateDir = history.DefaultDir()
	}
	logger := logging.New(stateDir)
	defer logger.Close()

	thresholds, err := config.Load(filepath.Join(stateDir, "config.json"))
	if err != nil {
		return err
	}

	ctx := optimizer.Context{Target: target, Scenario: scenario}
	store := history.NewStore(stateDir)
	if !optNoHistory {
		if prompts, err := store.Prompts(); err == nil {
			ctx.HistoryPrompts = prompts
		} else {
			logger.LogError(err)
		}
		if w, err := store.LoadWeights(); err == nil {
			ctx.LocalWeights = w
		} else {
			logger.LogError(err)
		}
	}

	opt := optimizer.New(optimizer.WithThresholds(thresholds))
	result := opt.Optimize(input, ctx)
	logger.LogOptimization(target.String(), scenario.String(), result.CandidateTitle,
		result.Score, len(result.Warnings))

	if !optNoHistory {
		if err := store.Add(result.OptimizedText); err != nil {
			logger.LogError(err)
		}
		if result.TunedWeights != nil {
			if err := store.SaveWeights(*result.TunedWeights); err != nil {
				logger.LogError(err)
			}
		}
	}

	return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), input, result)
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func printResult(out, errOut io.Writer, input string, result optimizer.Result) error {
	if optJSON {
		payload := map[string]any{
			"optimized_text":  result.OptimizedText,
			"candidate_title": result.CandidateTitle,
			"score":           result.Score,
			"breakdown":       result.Breakdown,
			"warnings":        result.Warnings,
		}
		if result.TunedWeights != nil {
			payload["tuned_weights"] = result.TunedWeights
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	if optDiff {
		printDiff(out, input, result.OptimizedText)
	} else {
		fmt.Fprintln(out, result.OptimizedText)
	}

	if optExplain {
		fmt.Fprintf(errOut, "\ncandidate: %s (score %d)\n", result.CandidateTitle, result.Score)
		keys := make([]string, 0, len(result.Breakdown))
		for k := range result.Breakdown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(errOut, "  %-24s %+d\n", k, result.Breakdown[k])
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(errOut, "warning: %s\n", w)
	}
	return nil
}

// printDiff renders a character diff, colored only when stdout is a TTY.
func printDiff(out io.Writer, before, after string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, dmp.DiffPrettyText(diffs))
		fmt.Fprintln(out)
		return
	}
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		default:
			b.WriteString(d.Text)
		}
	}
	fmt.Fprintln(out, b.String())
}
