package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"rts-backend/internal/casestudies"
	"rts-backend/internal/locale"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored catalog with the built-in default catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards the stored catalog; pass --yes to confirm")
			}
			return a.withRepository(cmd, func(ctx context.Context, repo *casestudies.KVRepository) error {
				if err := repo.Discard(ctx); err != nil {
					return err
				}
				items := a.newStore(repo).Load(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "catalog reset: %d case studies under %q\n", len(items), repo.Key())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored catalog as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepository(cmd, func(ctx context.Context, repo *casestudies.KVRepository) error {
				items, err := repo.Load(ctx)
				if errors.Is(err, casestudies.ErrNoSnapshot) {
					items, err = []casestudies.CaseStudy{}, nil
				}
				if err != nil {
					return err
				}
				return encode(cmd, format, items)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored catalog with the records in a JSON or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var items []casestudies.CaseStudy
			switch strings.ToLower(filepath.Ext(file)) {
			case ".yaml", ".yml":
				err = yaml.Unmarshal(raw, &items)
			default:
				err = json.Unmarshal(raw, &items)
			}
			if err != nil {
				return fmt.Errorf("decode %s: %w", file, err)
			}

			return a.withRepository(cmd, func(ctx context.Context, repo *casestudies.KVRepository) error {
				stored, err := a.newStore(repo).Replace(ctx, items)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "catalog imported: %d of %d case studies\n", len(stored), len(items))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Catalog file (.json, .yaml or .yml)")
	return cmd
}

func newHomepageCmd(a *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "homepage",
		Short: "Show the homepage projection of the stored catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, ok := locale.Parse(lang)
			if !ok {
				return fmt.Errorf("unsupported language %q", lang)
			}
			return a.withRepository(cmd, func(ctx context.Context, repo *casestudies.KVRepository) error {
				items := casestudies.NewHomepage(repo, a.log).Refresh(ctx)

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tICON\tCATEGORY\tDESCRIPTION")
				for _, view := range casestudies.LocalizeAll(items, tag) {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", view.ID, view.IconName, view.Category, view.Description)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "Language of the descriptions (en or ru)")
	return cmd
}

func encode(cmd *cobra.Command, format string, items []casestudies.CaseStudy) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
