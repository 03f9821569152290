package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap/planning"
)

func (c *cli) createCommand() *cobra.Command {
	var (
		params command.RoadmapParams
		file   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a roadmap",
		Long: `Create a roadmap from flags, or from a YAML or JSON file holding the
whole nested structure (timeframes, initiatives, items).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				fromFile, err := readRoadmapParams(file)
				if err != nil {
					return err
				}

				params = fromFile
			}

			result, err := c.facade().CreateRoadmap(cmd.Context(), params)
			if err != nil {
				return err
			}

			return c.renderResult(result)
		},
	}

	cmd.Flags().StringVar(&params.Title, "title", "", "Roadmap title")
	cmd.Flags().StringVar(&params.Description, "description", "", "Roadmap description")
	cmd.Flags().StringVar(&params.Version, "version", "", "Roadmap version")
	cmd.Flags().StringVar(&params.Owner, "owner", "", "Roadmap owner")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with the roadmap structure")
	cmd.MarkFlagsMutuallyExclusive("file", "title")

	return cmd
}

func readRoadmapParams(path string) (command.RoadmapParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return command.RoadmapParams{}, err
	}

	params := command.RoadmapParams{}
	if err = yaml.Unmarshal(data, &params); err != nil {
		return command.RoadmapParams{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return params, nil
}

func (c *cli) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <roadmap-id>",
		Short: "Show a roadmap with its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, found, err := c.facade().Roadmaps.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !found {
				return notFound("roadmap", args[0])
			}

			view := newRoadmapView(r)

			return c.render(view, func(w io.Writer) {
				writeRoadmapTree(w, r)
				_, _ = fmt.Fprintf(w, "%d timeframes, %d initiatives, %d items, %.0f%% completed\n",
					view.Stats.Timeframes, view.Stats.Initiatives, view.Stats.Items, view.Stats.CompletionPercent)
			})
		},
	}
}

func (c *cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all roadmaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roadmaps, err := c.facade().Roadmaps.List(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]roadmapSummaryView, 0, len(roadmaps))
			for _, r := range roadmaps {
				views = append(views, roadmapSummaryView{
					ID:         r.ID(),
					Title:      r.Title(),
					Owner:      r.Owner(),
					Revision:   r.Revision(),
					Timeframes: r.TimeframeCount(),
				})
			}

			return c.render(views, func(w io.Writer) {
				for _, view := range views {
					_, _ = fmt.Fprintf(w, "%s  %s  owner=%s  revision=%d  timeframes=%d\n",
						view.ID, view.Title, view.Owner, view.Revision, view.Timeframes)
				}
			})
		},
	}
}

func (c *cli) updateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <roadmap-id>",
		Short: "Change roadmap attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := roadmap.RoadmapPatch{
				Title:       optionalString(cmd, "title"),
				Description: optionalString(cmd, "description"),
				Version:     optionalString(cmd, "version"),
				Owner:       optionalString(cmd, "owner"),
			}

			return c.printResult(args[0])(c.facade().Roadmaps.Update(cmd.Context(), args[0], patch))
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("version", "", "New version")
	cmd.Flags().String("owner", "", "New owner")

	return cmd
}

func (c *cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <roadmap-id>",
		Short: "Delete a roadmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := c.facade().Roadmaps.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !deleted {
				return notFound("roadmap", args[0])
			}

			return c.render(deletedView{ID: args[0], Deleted: true}, func(w io.Writer) {
				_, _ = fmt.Fprintf(w, "deleted roadmap %s\n", args[0])
			})
		},
	}
}

func (c *cli) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <roadmap-id>",
		Short: "Check priority balance and timeframe ordering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, found, err := c.facade().Roadmaps.Validate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !found {
				return notFound("roadmap", args[0])
			}

			return c.renderValidation(result)
		},
	}
}

func (c *cli) renderValidation(result planning.ValidationResult) error {
	view := newValidationView(result)

	return c.render(view, func(w io.Writer) {
		if view.Valid {
			_, _ = fmt.Fprintln(w, "valid")
			return
		}

		_, _ = fmt.Fprintln(w, "invalid")
		for _, violation := range view.Violations {
			_, _ = fmt.Fprintf(w, "  - %s\n", violation)
		}
	})
}

func (c *cli) rebalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rebalance <roadmap-id>",
		Short: "Downgrade surplus high-priority initiatives to medium",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printResult(args[0])(c.facade().Roadmaps.Rebalance(cmd.Context(), args[0]))
		},
	}
}

func (c *cli) normalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <roadmap-id>",
		Short: "Renumber timeframes to 0..n-1 in their current order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printResult(args[0])(c.facade().Roadmaps.Normalize(cmd.Context(), args[0]))
		},
	}
}

func (c *cli) suggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <roadmap-id>",
		Short: "Suggest short, medium and long term buckets by priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			structure, found, err := c.facade().Roadmaps.Suggest(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !found {
				return notFound("roadmap", args[0])
			}

			return c.render(structure, func(w io.Writer) {
				writeBucket(w, "short term", structure.ShortTerm)
				writeBucket(w, "medium term", structure.MediumTerm)
				writeBucket(w, "long term", structure.LongTerm)
			})
		},
	}
}

func writeBucket(w io.Writer, name string, titles []string) {
	_, _ = fmt.Fprintf(w, "%s:\n", name)
	for _, title := range titles {
		_, _ = fmt.Fprintf(w, "  - %s\n", title)
	}
}
