package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/detector"
)

var detectCmd = &cobra.Command{
	Use:   "detect [filename]...",
	Short: "Print the detected document type",
	Long: `Print the document type each file would be processed as.

Existing .json files are read so that JSON-LD is told apart from plain JSON.
Names that do not exist on disk are classified by extension alone.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{skipBootstrap: "true"},
	RunE:        runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

// detectOutput is the rendered classification of one file.
type detectOutput struct {
	Filename string              `json:"filename" yaml:"filename"`
	Type     domain.DocumentType `json:"type" yaml:"type"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	outputs := make([]detectOutput, 0, len(args))
	for _, name := range args {
		docType, err := classifyFile(name)
		if err != nil {
			return fmt.Errorf("failed to detect %s: %w", name, err)
		}
		outputs = append(outputs, detectOutput{Filename: name, Type: docType})
	}

	return render(cmd, outputs, func() {
		for _, o := range outputs {
			cmd.Printf("%s\t%s\n", o.Type, o.Filename)
		}
	})
}

func classifyFile(name string) (domain.DocumentType, error) {
	docType := detector.Detect(name)
	if docType != domain.DocumentTypeJSON {
		return docType, nil
	}

	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return docType, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReadFailed, err)
	}
	return detector.Classify(name, string(data)), nil
}
