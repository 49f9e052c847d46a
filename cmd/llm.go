package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aturs3001/ai-math-tutor/internal/config"
	"github.com/aturs3001/ai-math-tutor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.Recent(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query request log: %w", err)
		}

		if len(recs) == 0 {
			fmt.Println("No model requests recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 90))

		for _, rec := range recs {
			if purpose != "" && rec.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !rec.Success {
				ok = "✗"
			}
			model := rec.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				rec.At.Local().Format("2006-01-02 15:04:05"),
				rec.Purpose,
				model,
				rec.InputTokens,
				rec.OutputTokens,
				rec.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. solve, quiz, hint)")

	llmCmd.AddCommand(llmListCmd)
}
