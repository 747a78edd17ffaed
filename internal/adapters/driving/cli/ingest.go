package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kgingest/internal/adapters/driving/upload"
	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/services"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path|url]...",
	Short: "Classify, extract and register documents",
	Long: `Ingest files and URLs one at a time, in the order given.

Each input is classified, processed by the matching extractor and registered
in the document store. A processing failure is stored with status "error";
an input that cannot be read or fetched is reported and skipped.

Examples:
  kgingest ingest notes.md data.json https://example.com/page
  cat graph.ttl | kgingest ingest --stdin --name graph.ttl`,
	RunE: runIngest,
}

// Ingest flags.
var (
	ingestStdin    bool
	ingestName     string
	ingestValidate bool
)

const defaultStdinName = "stdin.txt"

func init() {
	ingestCmd.Flags().BoolVar(&ingestStdin, "stdin", false, "Read one document from standard input")
	ingestCmd.Flags().StringVar(&ingestName, "name", defaultStdinName, "Filename for --stdin input (drives detection)")
	ingestCmd.Flags().BoolVar(&ingestValidate, "validate", true, "Reject files whose type is not an accepted upload type")
	rootCmd.AddCommand(ingestCmd)
}

// ingestOutput is the rendered outcome of one input.
type ingestOutput struct {
	Input    string              `json:"input" yaml:"input"`
	ID       string              `json:"id,omitempty" yaml:"id,omitempty"`
	Type     domain.DocumentType `json:"type,omitempty" yaml:"type,omitempty"`
	Status   domain.Status       `json:"status" yaml:"status"`
	Entities int                 `json:"entities" yaml:"entities"`
	Error    string              `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if len(args) == 0 && !ingestStdin {
		return fmt.Errorf("%w: no inputs given", domain.ErrInvalidInput)
	}

	inputs, rejected, closeAll, err := collectInputs(cmd, args)
	if err != nil {
		return err
	}
	defer closeAll()

	results, batchErr := ingestService.IngestBatch(cmd.Context(), inputs)

	outputs := make([]ingestOutput, 0, len(rejected)+len(results))
	outputs = append(outputs, rejected...)
	for i := range results {
		outputs = append(outputs, toIngestOutput(&results[i]))
	}

	if err := render(cmd, outputs, func() { printIngestOutputs(cmd, outputs) }); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if n := countUnstored(outputs); n > 0 {
		return fmt.Errorf("failed to ingest %d of %d inputs: %w", n, len(outputs), unstoredError(outputs))
	}
	if batchErr != nil {
		return fmt.Errorf("failed to ingest: %w", batchErr)
	}
	return nil
}

// collectInputs validates inputs and wraps files in lazy readers, so only the
// file being ingested is open. Rejected files are returned as outputs and
// never reach the core.
func collectInputs(cmd *cobra.Command, args []string) ([]domain.Input, []ingestOutput, func(), error) {
	var (
		inputs   []domain.Input
		rejected []ingestOutput
		files    []*lazyFile
	)
	closeAll := func() {
		for _, f := range files {
			f.Close() //nolint:errcheck
		}
	}

	if ingestStdin {
		input, err := stdinInput(cmd)
		if err != nil {
			return nil, nil, closeAll, err
		}
		if err := validateName(input.File.Name, ingestValidate); err != nil {
			rejected = append(rejected, rejectedOutput(input.File.Name, err))
		} else {
			inputs = append(inputs, input)
		}
	}

	for _, arg := range args {
		if isURL(arg) {
			inputs = append(inputs, domain.Input{URL: arg})
			continue
		}

		if err := validateName(arg, ingestValidate); err != nil {
			rejected = append(rejected, rejectedOutput(arg, err))
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			rejected = append(rejected, rejectedOutput(arg, fmt.Errorf("%w: %v", domain.ErrReadFailed, err)))
			continue
		}
		if info.IsDir() {
			rejected = append(rejected, rejectedOutput(arg, fmt.Errorf("%w: is a directory", domain.ErrInvalidInput)))
			continue
		}
		f := &lazyFile{path: arg}
		files = append(files, f)
		inputs = append(inputs, domain.Input{File: &domain.FileInput{Name: filepath.Base(arg), Content: f}})
	}

	return inputs, rejected, closeAll, nil
}

// lazyFile opens path on the first Read and closes it once reading ends.
type lazyFile struct {
	path string
	f    *os.File
	done bool
}

func (l *lazyFile) Read(p []byte) (int, error) {
	if l.done {
		return 0, io.EOF
	}
	if l.f == nil {
		f, err := os.Open(l.path)
		if err != nil {
			l.done = true
			return 0, err
		}
		l.f = f
	}

	n, err := l.f.Read(p)
	if err != nil {
		l.Close() //nolint:errcheck
	}
	return n, err
}

// Close releases the descriptor if it is still open.
func (l *lazyFile) Close() error {
	l.done = true
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

func stdinInput(cmd *cobra.Command) (domain.Input, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return domain.Input{}, fmt.Errorf("%w: --stdin needs piped input", domain.ErrInvalidInput)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return domain.Input{}, fmt.Errorf("%w: stdin: %v", domain.ErrReadFailed, err)
	}

	name := ingestName
	if name == "" {
		name = defaultStdinName
	}
	return domain.Input{File: &domain.FileInput{Name: name, Content: bytes.NewReader(data)}}, nil
}

func validateName(name string, enabled bool) error {
	if !enabled {
		return nil
	}
	return upload.Validate(name, services.MIMETypeFor(name))
}

func isURL(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func rejectedOutput(input string, err error) ingestOutput {
	return ingestOutput{Input: input, Status: domain.StatusError, Error: err.Error(), err: err}
}

func unstoredError(outputs []ingestOutput) error {
	var errs []error
	for _, o := range outputs {
		if o.ID == "" && o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Input, o.err))
		} else if o.ID == "" {
			errs = append(errs, fmt.Errorf("%s: %s", o.Input, o.Error))
		}
	}
	return errors.Join(errs...)
}

func toIngestOutput(r *domain.IngestResult) ingestOutput {
	out := ingestOutput{Input: r.Input, Status: domain.StatusError}
	if r.Processed != nil {
		out.Type = r.Processed.Type
		out.Status = r.Processed.Status
		out.Entities = len(r.Processed.Entities)
		out.Error = r.Processed.Error
	}
	if r.Stored != nil {
		out.ID = r.Stored.ID
	}
	if r.Err != nil {
		out.Status = domain.StatusError
		out.Error = r.Err.Error()
		out.err = r.Err
	}
	return out
}

func printIngestOutputs(cmd *cobra.Command, outputs []ingestOutput) {
	for _, o := range outputs {
		if o.ID == "" {
			cmd.Printf("  FAILED  %s: %s\n", o.Input, o.Error)
			continue
		}
		cmd.Printf("  %s\n", o.Input)
		cmd.Printf("    ID:       %s\n", o.ID)
		cmd.Printf("    Type:     %s\n", o.Type)
		cmd.Printf("    Status:   %s\n", o.Status)
		cmd.Printf("    Entities: %d\n", o.Entities)
		if o.Error != "" {
			cmd.Printf("    Error:    %s\n", o.Error)
		}
	}
	failed := countUnstored(outputs)
	cmd.Printf("\nTotal: %d ingested, %d failed\n", len(outputs)-failed, failed)
}

func countUnstored(outputs []ingestOutput) int {
	n := 0
	for _, o := range outputs {
		if o.ID == "" {
			n++
		}
	}
	return n
}
