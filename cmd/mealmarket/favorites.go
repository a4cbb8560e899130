package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beqramo/case/internal/app"
	"github.com/beqramo/case/internal/mealdb"
)

func (c *cli) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and edit saved meals",
	}
	cmd.AddCommand(
		c.favoritesListCmd(),
		c.favoritesEditCmd("add", "Save a meal by id"),
		c.favoritesEditCmd("remove", "Remove a saved meal by id"),
		c.favoritesEditCmd("toggle", "Save a meal, or remove it when already saved"),
	)
	return cmd
}

func (c *cli) favoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved meals in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				if err := env.Favorites.Load(ctx); err != nil {
					return err
				}
				favs := env.Favorites.Favorites()
				if c.jsonOut {
					if favs == nil {
						favs = []mealdb.Meal{}
					}
					return writeJSON(cmd.OutOrStdout(), favs)
				}
				if len(favs) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
					return err
				}
				return writeMeals(cmd.OutOrStdout(), favs, nil)
			})
		},
	}
}

// favoritesEditCmd builds the add, remove and toggle commands. Saved state
// must load first so the write does not replace the stored list.
func (c *cli) favoritesEditCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				if err := env.Favorites.Load(ctx); err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				if action == "remove" {
					if !env.Favorites.IsFavorite(id) {
						_, err := fmt.Fprintf(out, "%s is not a favorite\n", id)
						return err
					}
					if err := env.Favorites.Remove(ctx, id); err != nil {
						return err
					}
					_, err := fmt.Fprintf(out, "Removed %s\n", id)
					return err
				}

				meal, err := favoriteSummary(ctx, env, id)
				if err != nil {
					return err
				}

				if action == "add" {
					if env.Favorites.IsFavorite(id) {
						_, err := fmt.Fprintf(out, "%s is already a favorite\n", meal.Name)
						return err
					}
					if err := env.Favorites.Add(ctx, meal); err != nil {
						return err
					}
					_, err := fmt.Fprintf(out, "Added %s\n", meal.Name)
					return err
				}

				added, err := env.Favorites.Toggle(ctx, meal)
				if err != nil {
					return err
				}
				if added {
					_, err = fmt.Fprintf(out, "Added %s\n", meal.Name)
				} else {
					_, err = fmt.Fprintf(out, "Removed %s\n", meal.Name)
				}
				return err
			})
		},
	}
}

// favoriteSummary returns the saved summary for id, or fetches it from the
// API when the meal is not saved yet.
func favoriteSummary(ctx context.Context, env *app.Env, id string) (mealdb.Meal, error) {
	for _, meal := range env.Favorites.Favorites() {
		if meal.ID == id {
			return meal, nil
		}
	}
	detail, err := env.Client.Lookup(ctx, id)
	if err != nil {
		return mealdb.Meal{}, err
	}
	return detail.Summary(), nil
}
