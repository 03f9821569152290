package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

func (c *cli) noteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage roadmap notes",
	}

	cmd.AddCommand(c.noteAddCommand(), c.noteListCommand(), c.noteShowCommand(), c.noteDeleteCommand())

	return cmd
}

func (c *cli) noteAddCommand() *cobra.Command {
	var params command.NoteParams

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			note, err := c.facade().CreateNote(cmd.Context(), params)
			if err != nil {
				return err
			}

			return c.renderNotes([]roadmap.Note{note}, note.ToRecord())
		},
	}

	cmd.Flags().StringVar(&params.Title, "title", "", "Note title")
	cmd.Flags().StringVar(&params.Content, "content", "", "Note content")
	cmd.Flags().StringVar(&params.Category, "category", "", "Category (default feature)")
	cmd.Flags().StringVar(&params.Priority, "priority", "", "Priority (default medium)")
	cmd.Flags().StringVar(&params.Timeline, "timeline", "", "Free-form timeline label")
	cmd.Flags().StringSliceVar(&params.RelatedItems, "related", nil, "Related item ids")

	return cmd
}

func (c *cli) noteListCommand() *cobra.Command {
	var category, priority, timeline string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				notes []roadmap.Note
				err   error
			)

			switch {
			case category != "":
				notes, err = c.facade().NotesByCategory(cmd.Context(), category)
			case priority != "":
				notes, err = c.facade().NotesByPriority(cmd.Context(), priority)
			case timeline != "":
				notes, err = c.facade().Notes.ByTimeline(cmd.Context(), timeline)
			default:
				notes, err = c.facade().Notes.List(cmd.Context())
			}

			if err != nil {
				return err
			}

			records := make([]roadmap.NoteRecord, 0, len(notes))
			for _, note := range notes {
				records = append(records, note.ToRecord())
			}

			return c.renderNotes(notes, records)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only notes of this category")
	cmd.Flags().StringVar(&priority, "priority", "", "Only notes of this priority")
	cmd.Flags().StringVar(&timeline, "timeline", "", "Only notes with this timeline")
	cmd.MarkFlagsMutuallyExclusive("category", "priority", "timeline")

	return cmd
}

func (c *cli) noteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, found, err := c.facade().Notes.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !found {
				return notFound("note", args[0])
			}

			return c.render(note.ToRecord(), func(w io.Writer) {
				writeNoteLine(w, note)
				if note.Content() != "" {
					_, _ = fmt.Fprintln(w, note.Content())
				}
			})
		},
	}
}

func (c *cli) noteDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := c.facade().Notes.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !deleted {
				return notFound("note", args[0])
			}

			return c.render(deletedView{ID: args[0], Deleted: true}, func(w io.Writer) {
				_, _ = fmt.Fprintf(w, "deleted note %s\n", args[0])
			})
		},
	}
}

func (c *cli) renderNotes(notes []roadmap.Note, view any) error {
	return c.render(view, func(w io.Writer) {
		for _, note := range notes {
			writeNoteLine(w, note)
		}
	})
}
