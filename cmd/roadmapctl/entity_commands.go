package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

func (c *cli) timeframeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeframe",
		Short: "Add, change or remove timeframes",
	}

	add := &cobra.Command{
		Use:   "add <roadmap-id>",
		Short: "Add a timeframe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			order, _ := cmd.Flags().GetInt("order")

			return c.printResult(args[0])(c.facade().AddTimeframe(cmd.Context(), args[0], command.TimeframeParams{
				Name:  name,
				Order: order,
			}))
		},
	}
	add.Flags().String("name", "", "Timeframe name")
	add.Flags().Int("order", 0, "Sort position")

	update := &cobra.Command{
		Use:   "update <roadmap-id> <timeframe-id>",
		Short: "Rename or reorder a timeframe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := roadmap.TimeframePatch{
				Name:  optionalString(cmd, "name"),
				Order: optionalInt(cmd, "order"),
			}

			return c.printResult(args[0])(c.facade().Timeframes.Update(cmd.Context(), args[0], args[1], patch))
		},
	}
	update.Flags().String("name", "", "New name")
	update.Flags().Int("order", 0, "New sort position")

	remove := &cobra.Command{
		Use:   "remove <roadmap-id> <timeframe-id>",
		Short: "Remove a timeframe with its initiatives",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printResult(args[0])(c.facade().Timeframes.Remove(cmd.Context(), args[0], args[1]))
		},
	}

	cmd.AddCommand(add, update, remove)

	return cmd
}

func (c *cli) initiativeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initiative",
		Short: "Add, change, move or remove initiatives",
	}

	add := &cobra.Command{
		Use:   "add <roadmap-id> <timeframe-id>",
		Short: "Add an initiative to a timeframe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := command.InitiativeParams{}
			params.Title, _ = cmd.Flags().GetString("title")
			params.Description, _ = cmd.Flags().GetString("description")
			params.Category, _ = cmd.Flags().GetString("category")
			params.Priority, _ = cmd.Flags().GetString("priority")

			return c.printResult(args[0])(c.facade().AddInitiative(cmd.Context(), args[0], args[1], params))
		},
	}
	add.Flags().String("title", "", "Initiative title")
	add.Flags().String("description", "", "Initiative description")
	add.Flags().String("category", "", "feature, enhancement, tech-debt, bug-fix, research or infrastructure (default feature)")
	add.Flags().String("priority", "", "high, medium or low (default medium)")

	update := &cobra.Command{
		Use:   "update <roadmap-id> <timeframe-id> <initiative-id>",
		Short: "Change initiative attributes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := command.InitiativeUpdateParams{
				Title:       optionalString(cmd, "title"),
				Description: optionalString(cmd, "description"),
				Category:    optionalString(cmd, "category"),
				Priority:    optionalString(cmd, "priority"),
			}

			return c.printResult(args[0])(c.facade().UpdateInitiative(cmd.Context(), args[0], args[1], args[2], params))
		},
	}
	update.Flags().String("title", "", "New title")
	update.Flags().String("description", "", "New description")
	update.Flags().String("category", "", "New category")
	update.Flags().String("priority", "", "New priority")

	move := &cobra.Command{
		Use:   "move <roadmap-id> <initiative-id>",
		Short: "Move an initiative to another timeframe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")

			return c.printResult(args[0])(c.facade().MoveInitiative(cmd.Context(), args[0], args[1], from, to))
		},
	}
	move.Flags().String("from", "", "Source timeframe id")
	move.Flags().String("to", "", "Target timeframe id")
	_ = move.MarkFlagRequired("from")
	_ = move.MarkFlagRequired("to")

	remove := &cobra.Command{
		Use:   "remove <roadmap-id> <timeframe-id> <initiative-id>",
		Short: "Remove an initiative with its items",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printResult(args[0])(c.facade().Initiatives.Remove(cmd.Context(), args[0], args[1], args[2]))
		},
	}

	cmd.AddCommand(add, update, move, remove)

	return cmd
}

func (c *cli) itemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, change, link, move or remove items",
	}

	add := &cobra.Command{
		Use:   "add <roadmap-id> <timeframe-id> <initiative-id>",
		Short: "Add an item to an initiative",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := command.ItemParams{}
			params.Title, _ = cmd.Flags().GetString("title")
			params.Description, _ = cmd.Flags().GetString("description")
			params.Status, _ = cmd.Flags().GetString("status")
			params.RelatedEntities, _ = cmd.Flags().GetStringSlice("related")
			params.Notes, _ = cmd.Flags().GetString("notes")

			return c.printResult(args[0])(c.facade().AddItem(cmd.Context(), args[0], args[1], args[2], params))
		},
	}
	add.Flags().String("title", "", "Item title")
	add.Flags().String("description", "", "Item description")
	add.Flags().String("status", "", "planned, in-progress, blocked, completed or cancelled (default planned)")
	add.Flags().StringSlice("related", nil, "Related entity ids")
	add.Flags().String("notes", "", "Free-form notes")

	update := &cobra.Command{
		Use:   "update <roadmap-id> <timeframe-id> <initiative-id> <item-id>",
		Short: "Change item attributes",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := command.ItemUpdateParams{
				Title:           optionalString(cmd, "title"),
				Description:     optionalString(cmd, "description"),
				Status:          optionalString(cmd, "status"),
				RelatedEntities: optionalStrings(cmd, "related"),
				Notes:           optionalString(cmd, "notes"),
			}

			return c.printResult(args[0])(c.facade().UpdateItem(cmd.Context(), args[0], args[1], args[2], args[3], params))
		},
	}
	update.Flags().String("title", "", "New title")
	update.Flags().String("description", "", "New description")
	update.Flags().String("status", "", "New status")
	update.Flags().StringSlice("related", nil, "Replace related entity ids")
	update.Flags().String("notes", "", "New notes")

	link := &cobra.Command{
		Use:   "link <roadmap-id> <timeframe-id> <initiative-id> <item-id> <entity-id>",
		Short: "Relate an item to another entity",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := command.ItemLocation{TimeframeID: args[1], InitiativeID: args[2]}

			return c.printResult(args[0])(c.facade().Items.AddRelatedEntity(cmd.Context(), args[0], at, args[3], args[4]))
		},
	}

	unlink := &cobra.Command{
		Use:   "unlink <roadmap-id> <timeframe-id> <initiative-id> <item-id> <entity-id>",
		Short: "Remove a relation of an item",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := command.ItemLocation{TimeframeID: args[1], InitiativeID: args[2]}

			return c.printResult(args[0])(c.facade().Items.RemoveRelatedEntity(cmd.Context(), args[0], at, args[3], args[4]))
		},
	}

	move := &cobra.Command{
		Use:   "move <roadmap-id> <item-id>",
		Short: "Move an item to another initiative",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromTimeframe, _ := cmd.Flags().GetString("from-timeframe")
			fromInitiative, _ := cmd.Flags().GetString("from-initiative")
			toTimeframe, _ := cmd.Flags().GetString("to-timeframe")
			toInitiative, _ := cmd.Flags().GetString("to-initiative")

			return c.printResult(args[0])(c.facade().MoveItem(
				cmd.Context(), args[0], args[1], fromTimeframe, fromInitiative, toTimeframe, toInitiative))
		},
	}
	for _, name := range []string{"from-timeframe", "from-initiative", "to-timeframe", "to-initiative"} {
		move.Flags().String(name, "", "")
		_ = move.MarkFlagRequired(name)
	}

	remove := &cobra.Command{
		Use:   "remove <roadmap-id> <timeframe-id> <initiative-id> <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := command.ItemLocation{TimeframeID: args[1], InitiativeID: args[2]}

			return c.printResult(args[0])(c.facade().Items.Remove(cmd.Context(), args[0], at, args[3]))
		},
	}

	cmd.AddCommand(add, update, link, unlink, move, remove)

	return cmd
}
