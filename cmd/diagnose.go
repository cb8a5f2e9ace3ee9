package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/config"
	"github.com/timvw/replmux/internal/diagnose"
	"github.com/timvw/replmux/internal/session"
	"github.com/timvw/replmux/internal/theme"
)

var (
	flagProvider string
	flagModel    string
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [LINES]",
	Short: "Ask an LLM to explain the most recent error in the session",
	Long: `Capture the last LINES lines of scrollback (default 50) and ask an
LLM to explain the most recent error and suggest a fix to send to the
live session. Purely advisory: the session is never mutated.

Requires an API key (REPLMUX_API_KEY, ANTHROPIC_API_KEY, or
OPENAI_API_KEY depending on the provider).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "diagnose", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			lines := cfg.Lines
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid line count %q", args[0])
				}
				lines = n
			}

			transcript, err := ctl.Read(ctx, lines)
			if errors.Is(err, session.ErrSessionNotFound) {
				return notFoundErr(ctl.Name)
			}
			if err != nil {
				return err
			}

			explainer, err := newExplainer(cfg)
			if err != nil {
				return err
			}

			fmt.Println(theme.Dim.Render(fmt.Sprintf("Asking %s (%s)...", explainer.Model(), explainer.Provider())))
			explanation, err := explainer.Explain(ctx, transcript)
			if err != nil {
				return fmt.Errorf("diagnosis failed: %w", err)
			}
			activeMetrics.RecordTokens(ctx, explainer.Provider(), explainer.Model(),
				explanation.Usage.InputTokens, explanation.Usage.OutputTokens)

			fmt.Println(explanation.Text)
			return nil
		})
	},
}

// newExplainer builds the configured LLM explainer.
func newExplainer(cfg *config.Config) (diagnose.Explainer, error) {
	provider := cfg.Provider
	if flagProvider != "" {
		provider = flagProvider
	}
	model := cfg.Model
	if flagModel != "" {
		model = flagModel
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key found. Set REPLMUX_API_KEY, ANTHROPIC_API_KEY, or OPENAI_API_KEY")
	}

	switch provider {
	case "anthropic":
		return diagnose.NewAnthropicExplainer(diagnose.AnthropicConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case "openai":
		if flagModel == "" && cfg.Model == config.Defaults().Model {
			model = "gpt-4o-mini"
		}
		return diagnose.NewOpenAIExplainer(diagnose.OpenAIConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: anthropic, openai)", provider)
	}
}

func init() {
	diagnoseCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider: anthropic, openai")
	diagnoseCmd.Flags().StringVar(&flagModel, "model", "", "LLM model name")
	rootCmd.AddCommand(diagnoseCmd)
}
