package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/TheDarkNight21/a16z-oss-api/internal/validate"
)

var validateDir string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a built dataset for internal consistency",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := validateDir
		if dir == "" {
			dir = cfg.Output.Dir
		}

		findings, err := validate.Dataset(dir, cfg.Build.MinCompanies)
		if err != nil {
			return eris.Wrap(err, "validate")
		}

		if len(findings) == 0 {
			fmt.Println("Dataset is valid.")
			return nil
		}
		for _, finding := range findings {
			fmt.Printf("  - %s\n", finding)
		}
		return eris.Errorf("validate: %d findings", len(findings))
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", "", "dataset directory (defaults to output.dir)")
	rootCmd.AddCommand(validateCmd)
}
