package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizsense/internal/misconception"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the misconception rule tables as YAML",
	Long:  "Print the built-in misconception rule tables, or the tables with a rule file overlaid, as YAML.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := misconception.DefaultRules()
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			var err error
			if rules, err = misconception.LoadRules(path); err != nil {
				return err
			}
		}
		return rules.WriteYAML(cmd.OutOrStdout())
	},
}

func init() {
	rulesCmd.Flags().String("file", "", "Rule file to overlay on the built-in tables")
}
