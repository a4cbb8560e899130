package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beqramo/case/internal/app"
)

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List meal categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				categories, err := env.Client.Categories(ctx)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return writeJSON(cmd.OutOrStdout(), categories)
				}
				return writeCategories(cmd.OutOrStdout(), categories)
			})
		},
	}
}

func (c *cli) mealsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "meals <category>",
		Short:   "List the meals in a category",
		Example: "  mealmarket meals Seafood",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				loadFavorites(ctx, env)
				meals, err := env.Client.MealsByCategory(ctx, args[0])
				if err != nil {
					return err
				}
				if c.jsonOut {
					return writeJSON(cmd.OutOrStdout(), meals)
				}
				return writeMeals(cmd.OutOrStdout(), meals, env.Favorites.IsFavorite)
			})
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search <term>...",
		Short:   "Search meals by name",
		Example: "  mealmarket search chicken curry",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				loadFavorites(ctx, env)
				found, err := env.Client.Search(ctx, term)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return writeJSON(cmd.OutOrStdout(), found)
				}
				return writeMeals(cmd.OutOrStdout(), app.Summaries(found), env.Favorites.IsFavorite)
			})
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe with ingredients and instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				loadFavorites(ctx, env)
				detail, err := env.Client.Lookup(ctx, args[0])
				if err != nil {
					return err
				}
				if c.jsonOut {
					return writeJSON(cmd.OutOrStdout(), detail)
				}
				return writeDetail(cmd.OutOrStdout(), detail, env.Favorites.IsFavorite(detail.ID))
			})
		},
	}
}

// loadFavorites reads saved favorites for list markers. A failure is logged
// by the manager and leaves every meal unmarked.
func loadFavorites(ctx context.Context, env *app.Env) {
	_ = env.Favorites.Load(ctx)
}
