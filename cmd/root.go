package cmd

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wavefarer/ndbc/ndbc"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ndbc",
	Short: "Explore and fetch NOAA National Data Buoy Center observations",
	Long: `Discover buoy stations published on the NDBC THREDDS server, list the
data files collected for a buoy, and download and decode a netCDF file into
a flat observation table.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ndbc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log fetches and selection notes")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".ndbc" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ndbc")
	}

	viper.SetDefault("dataset", "stdmet")
	viper.SetDefault("scratch_dir", os.TempDir())
	viper.SetDefault("http_timeout", "30s")
	viper.SetDefault("user_agent", "ndbc-cli")
	viper.SetDefault("catalog_base", "https://dods.ndbc.noaa.gov/thredds/catalog/data/")
	viper.SetDefault("fileserver_base", "https://dods.ndbc.noaa.gov/thredds/fileServer/data/")

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && verbose {
		log := logger()
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// logger builds the CLI logger: pretty console output, quiet unless
// --verbose asks for selection notes and fetch traces.
func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// newClient assembles an ndbc.Client from viper configuration.
func newClient() *ndbc.Client {
	httpClient := &http.Client{Timeout: viper.GetDuration("http_timeout")}
	return ndbc.NewClient(
		ndbc.WithHTTPClient(httpClient),
		ndbc.WithScratchDir(viper.GetString("scratch_dir")),
		ndbc.WithUserAgent(viper.GetString("user_agent")),
		ndbc.WithBaseURLs(viper.GetString("catalog_base"), viper.GetString("fileserver_base")),
		ndbc.WithLogger(logger()),
	)
}
