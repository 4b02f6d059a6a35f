package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wavefarer/ndbc/ndbc"
)

var (
	fetchYear     int
	fetchDatatype string
	fetchRows     int
)

// fetchCmd runs the whole pipeline for one buoy and renders the decoded
// table. Missing positional arguments are collected interactively.
var fetchCmd = &cobra.Command{
	Use:   "fetch [dataset] [buoyid]",
	Short: "Download and decode a buoy data file",
	Long: `Fetch resolves one data file for a buoy and prints its contents. Without
--year or --datatype the first file in the server listing is used; hints are
matched by substring, first match wins.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset := viper.GetString("dataset")
		var buoyID string
		switch len(args) {
		case 2:
			dataset, buoyID = args[0], args[1]
		case 1:
			dataset = args[0]
		}

		if buoyID == "" {
			if err := promptRequest(&dataset, &buoyID); err != nil {
				return err
			}
		}

		ds, err := newClient().Buoy(cmd.Context(), dataset, buoyID, fetchYear, fetchDatatype)
		if err != nil {
			return err
		}
		fmt.Print(ds.Render(fetchRows))
		return nil
	},
}

// promptRequest collects dataset, buoy and hints with an interactive form.
func promptRequest(dataset, buoyID *string) error {
	var yearStr string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Dataset").Options(datasetOptions()...).Value(dataset),
			huh.NewInput().Title("Buoy ID").Value(buoyID),
			huh.NewInput().Title("Year (optional)").Value(&yearStr),
			huh.NewInput().Title("Datatype (optional)").Value(&fetchDatatype),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return err
	}
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return fmt.Errorf("invalid year %q", yearStr)
		}
		fetchYear = y
	}
	return nil
}

func datasetOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(ndbc.Datasets))
	for _, d := range ndbc.Datasets {
		opts = append(opts, huh.NewOption(d, d))
	}
	return opts
}

func init() {
	fetchCmd.Flags().IntVar(&fetchYear, "year", 0, "pick the file containing this year")
	fetchCmd.Flags().StringVar(&fetchDatatype, "datatype", "", "pick the file containing this typecode")
	fetchCmd.Flags().IntVar(&fetchRows, "rows", 20, "maximum data rows to print (0 = all)")
	rootCmd.AddCommand(fetchCmd)
}
