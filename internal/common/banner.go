package common

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner.
func PrintBanner(config *Config, logger arbor.ILogger) {
	version := GetVersion()
	build := GetBuild()

	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorGreen).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(80)

	fmt.Printf("\n")
	b.PrintTopLine()
	b.PrintCenteredText("WAKERU")
	b.PrintCenteredText("Multilingual Full-Text Search for RAG Pipelines")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", version, 15)
	b.PrintKeyValue("Build", build, 15)
	b.PrintKeyValue("Service URL", serviceURL, 15)
	b.PrintKeyValue("Dictionary", config.Dictionary.Preset, 15)
	b.PrintKeyValue("Languages", fmt.Sprintf("%v", config.Index.Languages), 15)
	b.PrintKeyValue("Index Dir", config.Index.DataDir, 15)
	b.PrintBottomLine()
	fmt.Printf("\n")

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("service_url", serviceURL).
		Str("dictionary_preset", config.Dictionary.Preset).
		Strs("languages", config.Index.Languages).
		Str("default_language", config.Index.DefaultLanguage).
		Str("index_data_dir", config.Index.DataDir).
		Msg("wakeru-api started")

	fmt.Printf("📋 Configuration:\n")
	fmt.Printf("   • Web Interface: %s\n", serviceURL)
	fmt.Printf("   • Dictionary preset: %s\n", config.Dictionary.Preset)
	fmt.Printf("   • Supported languages: %v (default: %s)\n", config.Index.Languages, config.Index.DefaultLanguage)
	fmt.Printf("   • Index data directory: %s\n", config.Index.DataDir)

	logFilePath := ""
	if loggerWithPath, ok := interface{}(logger).(interface{ GetLogFilePath() string }); ok {
		logFilePath = loggerWithPath.GetLogFilePath()
		if logFilePath != "" {
			fmt.Printf("   • Log File: %s\n", logFilePath)
		}
	}
	fmt.Printf("\n")

	printCapabilities(config, logger)
	fmt.Printf("\n")
}

// printCapabilities displays the endpoints and search features this
// build exposes.
func printCapabilities(config *Config, logger arbor.ILogger) {
	fmt.Printf("🎯 Enabled Features:\n")
	fmt.Printf("   • POST /wakeru — morphological tokenization\n")
	fmt.Printf("   • GET /health — liveness probe\n")
	fmt.Printf("   • BM25 full-text search per language (%v)\n", config.Index.Languages)

	hasJapanese := false
	for _, l := range config.Index.Languages {
		if l == "ja" {
			hasJapanese = true
		}
	}
	if hasJapanese {
		fmt.Printf("   • Japanese N-gram fallback for single-character queries\n")
	}

	logger.Info().
		Strs("languages", config.Index.Languages).
		Bool("japanese_ngram_fallback", hasJapanese).
		Msg("capabilities")
}

// PrintShutdownBanner displays the application shutdown banner.
func PrintShutdownBanner(logger arbor.ILogger) {
	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorGreen).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(42)

	b.PrintTopLine()
	b.PrintCenteredText("SHUTTING DOWN")
	b.PrintCenteredText("WAKERU")
	b.PrintBottomLine()
	fmt.Println()

	logger.Info().Msg("wakeru-api shutting down")
}

// PrintColorizedMessage prints a message with specified color and logs through Arbor.
func PrintColorizedMessage(color, message string, logger arbor.ILogger) {
	fmt.Printf("%s%s%s\n", color, message, banner.ColorReset)
}

// PrintSuccess prints a success message in green and logs it.
func PrintSuccess(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorGreen, fmt.Sprintf("✓ %s", message), logger)
	logger.Info().Str("type", "success").Msg(message)
}

// PrintError prints an error message in red and logs it.
func PrintError(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorRed, fmt.Sprintf("✗ %s", message), logger)
	logger.Error().Str("type", "error").Msg(message)
}

// PrintWarning prints a warning message in yellow and logs it.
func PrintWarning(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorYellow, fmt.Sprintf("⚠ %s", message), logger)
	logger.Warn().Str("type", "warning").Msg(message)
}

// PrintInfo prints an info message in cyan and logs it.
func PrintInfo(message string) {
	logger := GetLogger()
	PrintColorizedMessage(banner.ColorCyan, fmt.Sprintf("ℹ %s", message), logger)
	logger.Info().Str("type", "info").Msg(message)
}
