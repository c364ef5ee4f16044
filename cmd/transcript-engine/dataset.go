// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-engine/internal/convert"
	"github.com/pdiddy/transcript-engine/internal/dataset"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage the case dataset (build, index, retrieve, export)",
	Long: `Dataset manages the discussion dataset built from converted scripts.
Use subcommands to build the dataset from raw documents, re-index scripts,
query turns, or export.`,
}

// --- build subcommand ---

var datasetBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Convert, aggregate, and index the full dataset",
	Long: `Build runs the whole pipeline: it converts every raw document to a
script, aggregates the scripts into dataset/discussions.json, and indexes
every turn into a SQLite database with FTS5 search.

If discussions.json already exists, build asks before overwriting it;
--force skips the prompt and also reconverts existing scripts. In --strict
mode the first bad document aborts the run instead of being skipped.`,
	RunE: runDatasetBuild,
}

func runDatasetBuild(cmd *cobra.Command, args []string) error {
	convertCfg := convertConfigFromFlags(cmd)
	datasetCfg := datasetConfigFromFlags(cmd)

	roles, err := resolveRoles(cmd)
	if err != nil {
		return err
	}
	conv, err := convert.NewColorRunConverter(roles)
	if err != nil {
		return err
	}

	// Stage 1: convert raw documents to scripts.
	paths, err := convert.ListDocuments(convertCfg.TranscriptsDir)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		result := convert.ConvertPaths(conv, paths, convertCfg, os.Stdout)
		if result.HasFailures() && datasetCfg.Strict {
			return fmt.Errorf("%d document(s) failed conversion", result.Failed)
		}
	}

	// Stage 2: aggregate scripts into the discussion set.
	set, summary, err := dataset.Aggregate(convertCfg.TranscriptsDir, datasetCfg.Strict, os.Stdout)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		return fmt.Errorf("no scripts to aggregate under %s/script", convertCfg.TranscriptsDir)
	}

	discussionsPath := filepath.Join(datasetCfg.DatasetDir, "discussions.json")
	if !convertCfg.Force {
		ok, err := confirmOverwrite(discussionsPath, os.Stdin)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := dataset.WriteDiscussions(set, datasetCfg.DatasetDir); err != nil {
		return err
	}
	fmt.Printf("Wrote %d case(s) to %s\n", summary.Aggregated, discussionsPath)

	// Stage 3: index every turn for retrieval.
	store, err := dataset.NewStore(datasetCfg, convertCfg.TranscriptsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	isum, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if isum.Failed > 0 {
		return fmt.Errorf("%d script(s) failed indexing", isum.Failed)
	}
	return nil
}

// confirmOverwrite asks before replacing path. It returns true when the file
// does not exist yet or the user answers yes.
func confirmOverwrite(path string, in io.Reader) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return true, nil
	}
	fmt.Printf("%s exists. Overwrite? [y/N] ", path)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// --- index subcommand ---

var datasetIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index converted scripts into the dataset database",
	Long: `Index ingests JSONL scripts from transcripts/script/ into a SQLite
database with FTS5 indexing, and writes an export file. Unchanged scripts
are skipped on subsequent runs.`,
	RunE: runDatasetIndex,
}

func runDatasetIndex(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d script(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var datasetRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the dataset with full-text search and filters",
	Long: `Retrieve searches indexed turns using FTS5 full-text search, structured
filters (role, client, category, case), or a combination of both.

Use --trace with CASE:SEQ to view the conversation around a specific turn.`,
	RunE: runDatasetRetrieve,
}

func runDatasetRetrieve(cmd *cobra.Command, args []string) error {
	trace, _ := cmd.Flags().GetString("trace")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	// Trace mode: show the conversation context around one turn.
	if trace != "" {
		caseID, seq, err := parseTraceRef(trace)
		if err != nil {
			return err
		}
		turns, err := store.Trace(context.Background(), caseID, seq)
		if err != nil {
			return err
		}
		for _, turn := range turns {
			role := turn.Role
			if role == "" {
				role = "(unattributed)"
			}
			fmt.Printf("%s: %s\n", role, strings.TrimSpace(turn.Text))
		}
		return nil
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --role, --client, --category, or --case")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

// parseTraceRef splits a CASE:SEQ reference like "meganDenial:3".
func parseTraceRef(ref string) (string, int, error) {
	i := strings.LastIndex(ref, ":")
	if i < 0 {
		return "", 0, fmt.Errorf("trace reference %q: want CASE:SEQ", ref)
	}
	seq, err := strconv.Atoi(ref[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("trace reference %q: bad turn number: %w", ref, err)
	}
	return ref[:i], seq, nil
}

func formatRetrieveOutput(results []dataset.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-50s  %-20s  %-10s  %s\n",
		"Rank", "Role", "Content", "Case", "Client", "Turn")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 108))

	for i, r := range results {
		content := strings.ReplaceAll(strings.TrimSpace(r.Content), "\n", " ")
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		caseID := r.CaseID
		if len(caseID) > 20 {
			caseID = caseID[:17] + "..."
		}
		client := r.Client
		if len(client) > 10 {
			client = client[:7] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-50s  %-20s  %-10s  %d\n",
			i+1, r.Role, content, caseID, client, r.Seq)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var datasetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset index to YAML or JSON",
	Long: `Export writes the indexed turns (or a filtered subset) to
dataset/index/export.yaml or export.json. Supports the same filter flags
as retrieve for partial exports.`,
	RunE: runDatasetExport,
}

func runDatasetExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	datasetDir := flagOrConfig(cmd, "dataset-dir", "dataset_dir")

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(datasetDir, "index", "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(datasetDir, "index", "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*dataset.Store, error) {
	transcriptsDir := flagOrConfig(cmd, "transcripts-dir", "transcripts_dir")
	return dataset.NewStore(datasetConfigFromFlags(cmd), transcriptsDir)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) dataset.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	role, _ := cmd.Flags().GetString("role")
	client, _ := cmd.Flags().GetString("client")
	category, _ := cmd.Flags().GetString("category")
	caseID, _ := cmd.Flags().GetString("case")
	limit, _ := cmd.Flags().GetInt("limit")

	return dataset.QueryOptions{
		Query:      queryText,
		Role:       role,
		Client:     client,
		Category:   category,
		CaseID:     caseID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	datasetCmd.PersistentFlags().String("dataset-dir", "dataset", "base directory for the dataset (contains discussions.json, index/)")
	datasetCmd.PersistentFlags().String("transcripts-dir", "transcripts", "base directory for transcripts (contains raw/, script/, metadata/)")
	datasetCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Build flags.
	datasetBuildCmd.Flags().String("rolemap", "", "path to a YAML role map (color spec -> role name)")
	datasetBuildCmd.Flags().StringArray("role", nil, `inline role mapping, e.g. --role "RGB(74, 21, 148)=Expert"`)
	datasetBuildCmd.Flags().Bool("force", false, "overwrite outputs without asking and reconvert existing scripts")
	datasetBuildCmd.Flags().Bool("strict", false, "abort on the first bad document instead of skipping it")

	// Retrieve flags.
	datasetRetrieveCmd.Flags().String("query", "", "full-text search query")
	datasetRetrieveCmd.Flags().String("role", "", "filter by speaker role")
	datasetRetrieveCmd.Flags().String("client", "", "filter by client name")
	datasetRetrieveCmd.Flags().String("category", "", "filter by discussion category")
	datasetRetrieveCmd.Flags().String("case", "", "filter by case ID")
	datasetRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	datasetRetrieveCmd.Flags().String("trace", "", "show conversation context for a CASE:SEQ reference")
	datasetRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	datasetExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	datasetExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	datasetExportCmd.Flags().String("role", "", "filter by speaker role for partial export")
	datasetExportCmd.Flags().String("client", "", "filter by client name for partial export")
	datasetExportCmd.Flags().String("category", "", "filter by discussion category for partial export")
	datasetExportCmd.Flags().String("case", "", "filter by case ID for partial export")
	datasetExportCmd.Flags().Int("limit", 0, "maximum turns to export (0 = all)")

	// Wire subcommands.
	datasetCmd.AddCommand(datasetBuildCmd)
	datasetCmd.AddCommand(datasetIndexCmd)
	datasetCmd.AddCommand(datasetRetrieveCmd)
	datasetCmd.AddCommand(datasetExportCmd)

	rootCmd.AddCommand(datasetCmd)
}
