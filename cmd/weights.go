package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"promptforge/pkg/history"
	"promptforge/pkg/scoring"
)

var weightsStateDir string

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show or reset learned scoring weights",
}

var weightsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active weight vector",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := history.NewStore(stateDirOrDefault())
		w, err := store.LoadWeights()
		if err != nil {
			return err
		}
		source := "learned"
		if w == nil {
			defaults := scoring.Default()
			w = &defaults
			source = "defaults"
		}
		data, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "source: %s\nsignature: %s\n%s\n", source, w.Signature(), data)
		return nil
	},
}

var weightsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard learned weights and return to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := history.NewStore(stateDirOrDefault())
		if err := store.ResetWeights(); err != nil {
			return fmt.Errorf("reset weights: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "weights reset to defaults")
		return nil
	},
}

func stateDirOrDefault() string {
	if weightsStateDir != "" {
		return weightsStateDir
	}
	return history.DefaultDir()
}

func init() {
	weightsCmd.PersistentFlags().StringVar(&weightsStateDir, "state-dir", "", "state directory (default ~/.promptforge)")
	weightsCmd.AddCommand(weightsShowCmd)
	weightsCmd.AddCommand(weightsResetCmd)
}
