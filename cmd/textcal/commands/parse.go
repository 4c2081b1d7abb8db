package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/textcal/textcal/internal/extract"
	"github.com/textcal/textcal/internal/output"
	"github.com/textcal/textcal/internal/sanitize"
	"github.com/textcal/textcal/pkg/event"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Extract calendar events from a text file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("timezone", "UTC", "target IANA timezone for event times")
	parseCmd.Flags().String("current-date", "", "reference date for relative phrases (default: now)")
	parseCmd.Flags().Int("duration", 60, "default event duration in minutes")
	parseCmd.Flags().Bool("single", false, "treat the whole input as one event (skips segmentation)")
	parseCmd.Flags().Bool("html", false, "input is HTML; convert to plain text first")
	parseCmd.Flags().StringP("format", "f", "json", "output format (json, jsonl, yaml)")
	parseCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		logError("%v", err)
		return err
	}

	if isHTML, _ := cmd.Flags().GetBool("html"); isHTML {
		text, err = sanitize.HTMLToText(text)
		if err != nil {
			logError("failed to convert HTML input: %v", err)
			return err
		}
	}

	opts := event.Options{
		Timezone: mustFlagString(cmd, "timezone"),
		Model:    viper.GetString("model"),
	}
	opts.UserPreferences.DefaultDuration, _ = cmd.Flags().GetInt("duration")
	if raw := mustFlagString(cmd, "current-date"); raw != "" {
		t, err := dateparse.ParseAny(raw)
		if err != nil {
			logError("invalid --current-date: %v", err)
			return err
		}
		opts.CurrentDate = t
	}

	completer, err := buildCompleter()
	if err != nil {
		logError("%v", err)
		return err
	}
	service := extract.NewService(completer)

	single, _ := cmd.Flags().GetBool("single")
	opts.MultiEvent = !single

	var events []event.ExtractedEventData
	if single {
		ev, err := service.ExtractEventDetails(cmd.Context(), text, opts)
		if err != nil {
			logError("%v", err)
			return err
		}
		events = []event.ExtractedEventData{*ev}
	} else {
		events, err = service.ExtractEvents(cmd.Context(), text, opts)
		if err != nil {
			logError("%v", err)
			return err
		}
	}

	return writeEvents(cmd, events)
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func writeEvents(cmd *cobra.Command, events []event.ExtractedEventData) error {
	dest := os.Stdout
	if path := mustFlagString(cmd, "output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	format := output.Format(strings.ToLower(mustFlagString(cmd, "format")))
	writer, err := output.NewWriter(dest, format)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := writer.Write(ev); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func mustFlagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
