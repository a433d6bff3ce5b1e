package app

import (
	"fmt"

	"github.com/bethropolis/tag-filter/internal/category"
	"github.com/bethropolis/tag-filter/internal/phrases"
	"github.com/bethropolis/tag-filter/internal/summary"
	"github.com/spf13/cobra"
)

func (a *App) phrasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "phrases [CATEGORY...]",
		Short: "Show phrase file status, or the phrases of the named categories",
		Long: `Without arguments, list every phrase file with its load status.
With category names (or "exclude"), print the phrases each one matches,
including the shared defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				summary.DisplayLoadStatus(eng.Registry.Status(), a.Output)
				return nil
			}

			for _, name := range args {
				var set phrases.Set
				if name == category.Exclude {
					set = eng.Registry.ExcludeSet()
				} else if set, err = eng.Registry.FeaturesFor(name); err != nil {
					return err
				}
				fmt.Fprintf(a.Output, "%s (%d):\n", name, set.Len())
				for _, phrase := range set.Items() {
					fmt.Fprintf(a.Output, "  %s\n", phrase)
				}
			}
			return nil
		},
	}
}
