package app

import (
	"github.com/bethropolis/tag-filter/internal/request"
	"github.com/spf13/cobra"
)

func (a *App) invokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke",
		Short: "Run one JSON request from stdin and write the JSON response",
		Long: `Read a request object from stdin, for example

  {"text_input": "alice, red dress", "clothing_toggle": false,
   "exclude_toggle": true, "other_toggle": 1, "output_mode": "multi"}

and write {"mode": ..., "names": [...], "outputs": [...]} to stdout.
Missing toggles are on, debug_mode is off and output_mode defaults to single.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			inv, err := request.Decode(a.in, eng.Registry.Names())
			if err != nil {
				return err
			}
			res := eng.Filter.Run(inv.Text, inv.Toggles, inv.Options)
			return request.NewResponse(res).Encode(a.Output)
		},
	}
}
