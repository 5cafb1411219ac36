package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yash-makwana/ipo/internal/ontology"
)

// ontologyCmd represents the ontology command
var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Inspect and validate expectation ontologies",
}

var ontologyShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print an ontology as YAML (built-in when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ont, err := loadOntologyArg(args)
		if err != nil {
			return err
		}

		data, err := ont.Marshal()
		if err != nil {
			return fmt.Errorf("marshal ontology: %w", err)
		}

		fmt.Print(string(data))
		return nil
	},
}

var ontologyValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an ontology file (structure, hints, known kinds)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ont, err := ontology.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✓ %s: %d chapters, %d expectations (fingerprint %s)\n",
			args[0], len(ont.Chapters()), len(ont.Expectations()), ont.Fingerprint())
		for _, exp := range ont.Expectations() {
			fmt.Printf("  - %s [%s] gap=%s priority=%d\n", exp.ID, exp.AnswerType, exp.Gap, exp.Priority)
		}
		return nil
	},
}

func loadOntologyArg(args []string) (*ontology.Ontology, error) {
	if len(args) == 0 {
		return ontology.Default(), nil
	}
	return ontology.Load(args[0])
}

func init() {
	rootCmd.AddCommand(ontologyCmd)
	ontologyCmd.AddCommand(ontologyShowCmd)
	ontologyCmd.AddCommand(ontologyValidateCmd)
}
