// Package commands implements the CLI commands for textcal.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/textcal/textcal/internal/llm"
	"github.com/textcal/textcal/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "textcal",
	Short: "Extract structured calendar events from natural-language text",
	Long: `Textcal turns free-form text (emails, notes, pasted schedules) into
validated calendar events using an LLM backend.

Examples:
  # Parse a note from stdin
  echo "Team meeting tomorrow at 2pm in Room A" | textcal parse -

  # Parse an email file, two events or more, New York time
  textcal parse mail.txt --timezone America/New_York

  # Serve the HTTP API
  textcal serve --addr :8080

  # Compare model accuracy and cost offline
  textcal compare -M gpt-4o-mini -M gpt-4o`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.textcal.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")
	rootCmd.PersistentFlags().StringP("provider", "p", "", "model provider (openai, anthropic, openrouter, ollama; default: auto-detect)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "model identifier (default: provider default)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".textcal")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TEXTCAL")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY")

	_ = viper.ReadInConfig()
}

// buildCompleter wires the configured provider behind the retrying
// gateway.
func buildCompleter() (llm.Completer, error) {
	name := viper.GetString("provider")
	apiKey := viper.GetString("api_key")
	if name == "" {
		name, apiKey = llm.DetectProvider()
	}

	model := viper.GetString("model")
	if model == "" {
		model = llm.GetDefaultModel(name)
	}

	provider, err := llm.NewProvider(name, llm.ProviderConfig{
		APIKey:  apiKey,
		BaseURL: viper.GetString("base_url"),
		Model:   model,
		Timeout: 60 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("provider ready", "provider", name, "model", model)
	return llm.NewGateway(provider), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
