package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/onepredict/lges-query-server/pkg/version"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Read and check the release history",
	Long: `Read and check CHANGELOG.md, which follows the Keep a Changelog format.

Without --file the changelog embedded in the binary is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var changelogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the changelog follows Keep a Changelog",
	Long: `Check that the changelog follows the Keep a Changelog format.

Checks include:
- File has a title (# Changelog)
- Has an [Unreleased] section
- Version entries use the format ## [X.Y.Z] - YYYY-MM-DD
- Change types are Added, Changed, Deprecated, Removed, Fixed or Security
- Link definitions exist for all versions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := changelogSource(cmd)
		if err != nil {
			return err
		}
		return checkChangelog(cmd.OutOrStdout(), source)
	},
}

var changelogExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the notes of one version",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := changelogSource(cmd)
		if err != nil {
			return err
		}
		v, _ := cmd.Flags().GetString("version")
		return extractRelease(cmd.OutOrStdout(), source, v)
	},
}

var changelogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all versions in the changelog",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := changelogSource(cmd)
		if err != nil {
			return err
		}
		for _, r := range version.Parse(source).Releases {
			if r.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", r.Version, r.Date)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), r.Version)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changelogCmd)
	for _, c := range []*cobra.Command{changelogCheckCmd, changelogExtractCmd, changelogListCmd} {
		c.Flags().StringP("file", "f", "", "Path to a changelog file")
		changelogCmd.AddCommand(c)
	}
	changelogExtractCmd.Flags().StringP("version", "v", "", "Version to extract (with or without 'v' prefix)")
	_ = changelogExtractCmd.MarkFlagRequired("version")
}

func changelogSource(cmd *cobra.Command) ([]byte, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return version.Embedded(), nil
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return content, nil
}

func checkChangelog(out io.Writer, source []byte) error {
	problems := version.Check(source)
	if len(problems) == 0 {
		fmt.Fprintln(out, "Changelog is valid")
		return nil
	}

	fmt.Fprintf(out, "Found %d issue(s):\n\n", len(problems))
	for _, p := range problems {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return fmt.Errorf("changelog has %d issue(s)", len(problems))
}

func extractRelease(out io.Writer, source []byte, v string) error {
	h := version.Parse(source)
	release := h.Find(v)
	if release == nil {
		return fmt.Errorf("version %s not found in changelog", v)
	}

	if release.Date != "" {
		fmt.Fprintf(out, "## [%s] - %s\n\n", release.Version, release.Date)
	} else {
		fmt.Fprintf(out, "## [%s]\n\n", release.Version)
	}
	fmt.Fprint(out, release.Notes)
	if url, ok := h.Links[release.Version]; ok {
		fmt.Fprintf(out, "\n\n[%s]: %s\n", release.Version, url)
	}
	return nil
}
