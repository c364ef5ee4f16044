// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the transcript-engine CLI.
// Implements: prd001-parsing, prd002-conversion, prd003-dataset (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the transcript-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "transcript-engine",
	Short: "Infrastructure for building discussion datasets from color-run transcripts",
	Long: `transcript-engine turns color-coded session transcripts into structured
discussion datasets. Documents use text color to attribute speakers; the CLI
parses them into speaker-attributed scripts, aggregates the scripts into a
case dataset, and indexes every turn for retrieval.

Each pipeline stage is a subcommand: palette inspects a document's colors,
convert produces JSONL scripts, and dataset builds and queries the dataset.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./transcript-engine.yaml or ~/.config/transcript-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("transcript-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "transcript-engine"))
		}
	}

	viper.SetEnvPrefix("TRANSCRIPT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// flagOrConfig returns the flag value, or the config file value when the
// flag was left at its default and the config file sets the key.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	return v
}

// convertConfigFromFlags builds the conversion stage configuration.
func convertConfigFromFlags(cmd *cobra.Command) types.ConvertConfig {
	force, _ := cmd.Flags().GetBool("force")
	return types.ConvertConfig{
		TranscriptsDir: flagOrConfig(cmd, "transcripts-dir", "transcripts_dir"),
		Force:          force,
	}
}

// datasetConfigFromFlags builds the dataset stage configuration.
func datasetConfigFromFlags(cmd *cobra.Command) types.DatasetConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	strict, _ := cmd.Flags().GetBool("strict")
	return types.DatasetConfig{
		DatasetDir: flagOrConfig(cmd, "dataset-dir", "dataset_dir"),
		MaxResults: maxResults,
		Strict:     strict,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
