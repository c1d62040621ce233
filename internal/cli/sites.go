package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promo-watch/promoscrape/internal/config"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List configured site profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadSites(cfg.SitesFile)
		if err != nil {
			return err
		}
		for _, name := range registry.Names() {
			profile := registry[name]
			fmt.Printf("%s\t%s\t%d categories\n", name, profile.BaseURL, len(profile.Categories))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
