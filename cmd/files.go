package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// filesCmd lists the data files collected for one buoy, with the buoy id
// already stripped so the typecode+year convention is visible.
var filesCmd = &cobra.Command{
	Use:   "files <dataset> <buoyid>",
	Short: "List the data files available for a buoy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, buoyID := args[0], strings.ToLower(args[1])

		client := newClient()
		var pageURL string
		for _, e := range client.Buoys(cmd.Context(), dataset) {
			if e.ID == buoyID {
				pageURL = e.URL
				break
			}
		}
		if pageURL == "" {
			return fmt.Errorf("buoy %s not found in dataset %s", buoyID, dataset)
		}

		files, err := client.BuoyFiles(cmd.Context(), pageURL, buoyID)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println(faintStyle.Render("no data files for buoy " + buoyID))
			return nil
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
