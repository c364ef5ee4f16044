// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-engine/internal/convert"
	"github.com/pdiddy/transcript-engine/internal/rolemap"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [documents...]",
	Short: "Convert color-run documents to speaker-attributed scripts",
	Long: `Convert parses color-run documents into JSONL scripts (one JSON turn
per line) with a YAML metadata record per document. With no arguments it
converts every document under transcripts/raw/. Existing scripts are
skipped unless --force is given.

Speaker roles come from the role map: a YAML file (--rolemap or the config
file), inline --role pairs, or a roles table in the config file. Without a
role map, documents are split into turns with blank roles.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("transcripts-dir", "transcripts", "base directory for transcripts (contains raw/, script/, metadata/)")
	convertCmd.Flags().String("rolemap", "", "path to a YAML role map (color spec -> role name)")
	convertCmd.Flags().StringArray("role", nil, `inline role mapping, e.g. --role "RGB(74, 21, 148)=Expert"`)
	convertCmd.Flags().Bool("force", false, "reconvert documents whose scripts already exist")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfigFromFlags(cmd)

	roles, err := resolveRoles(cmd)
	if err != nil {
		return err
	}

	conv, err := convert.NewColorRunConverter(roles)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths, err = convert.ListDocuments(cfg.TranscriptsDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No documents found under", cfg.TranscriptsDir+"/raw")
			return nil
		}
	}

	result := convert.ConvertPaths(conv, paths, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

// resolveRoles builds the role map from, in order of increasing precedence:
// the roles table in the config file, a role map file (config file path or
// --rolemap), and inline --role pairs.
func resolveRoles(cmd *cobra.Command) (types.RoleMap, error) {
	roles := types.RoleMap{}

	if cfgRoles := viper.GetStringMapString("roles"); len(cfgRoles) > 0 {
		roles = rolemap.Merge(roles, types.RoleMap(cfgRoles))
	}

	path := flagOrConfig(cmd, "rolemap", "rolemap")
	if path != "" {
		fromFile, err := rolemap.Load(path)
		if err != nil {
			return nil, err
		}
		roles = rolemap.Merge(roles, fromFile)
	}

	pairs, _ := cmd.Flags().GetStringArray("role")
	if len(pairs) > 0 {
		fromPairs, err := rolemap.FromPairs(pairs)
		if err != nil {
			return nil, err
		}
		roles = rolemap.Merge(roles, fromPairs)
	}

	if err := roles.Validate(); err != nil {
		return nil, err
	}
	return roles, nil
}
