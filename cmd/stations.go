package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var locateStations bool

// stationsCmd lists the buoy stations published for a dataset, optionally
// resolving their coordinates from the NDBC station pages.
var stationsCmd = &cobra.Command{
	Use:   "stations [dataset]",
	Short: "List buoy stations available in a dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset := viper.GetString("dataset")
		if len(args) > 0 {
			dataset = args[0]
		}

		client := newClient()
		entries := client.Buoys(cmd.Context(), dataset)
		if len(entries) == 0 {
			fmt.Println(faintStyle.Render("no stations found for dataset " + dataset))
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d stations", dataset, len(entries))))

		if !locateStations {
			for _, e := range entries {
				fmt.Println(e.ID)
			}
			return nil
		}

		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		// Best-effort: stations whose metadata page fails to load or parse
		// are simply missing from the output.
		for _, st := range client.Stations(cmd.Context(), ids) {
			fmt.Printf("%-8s %9.3f %9.3f  %s\n", st.ID, st.Lat, st.Lon, st.Name)
		}
		return nil
	},
}

func init() {
	stationsCmd.Flags().BoolVar(&locateStations, "locate", false, "scrape station pages for names and coordinates")
	rootCmd.AddCommand(stationsCmd)
}
