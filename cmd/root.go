package cmd

import (
	"github.com/spf13/cobra"
)

func Run() error {
	rootCmd := &cobra.Command{
		Use:   "check-elasticsearch-snapshots",
		Short: "Monitoring plugin checking the age of Elasticsearch snapshots",
	}
	checkCmd := buildCheckCmd()
	rootCmd.AddCommand(checkCmd)
	return rootCmd.Execute()
}
