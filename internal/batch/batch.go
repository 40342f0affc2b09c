// Package batch runs converter designs described in a YAML file without
// prompting.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/converter"
	"github.com/iwvelando/converter-design/pkg/output"
	"github.com/iwvelando/converter-design/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Entry is one named design in a batch file.
type Entry struct {
	Name                  string `yaml:"name"`
	Topology              string `yaml:"topology"`
	converter.Requirement `yaml:",inline"`
}

// File is the top level of a batch file.
type File struct {
	Designs []Entry `yaml:"designs"`
}

// Saver persists a design result and returns where it went.
type Saver interface {
	Append(res converter.Result) (string, error)
}

// Options controls a batch run.
type Options struct {
	Format string // pretty or csv
	Save   bool
}

// Summary counts the outcome of a batch run.
type Summary struct {
	Designed int
	Rejected int
	Saved    int
}

// LoadFile reads and parses a batch file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a batch document and resolves every topology name.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(f.Designs) == 0 {
		return nil, errors.New("batch file contains no designs")
	}
	for i := range f.Designs {
		if err := f.Designs[i].resolve(); err != nil {
			return nil, fmt.Errorf("design %d (%s): %w", i+1, f.Designs[i].label(i), err)
		}
	}
	return &f, nil
}

// ParseEntry decodes a single design. JSON documents are accepted as well,
// being valid YAML.
func ParseEntry(data []byte) (Entry, error) {
	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("failed to parse design: %w", err)
	}
	if err := e.resolve(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (e *Entry) resolve() error {
	t, err := converter.ParseTopology(e.Topology)
	if err != nil {
		return err
	}
	e.Requirement.Topology = t
	return nil
}

func (e Entry) label(i int) string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("design-%d", i+1)
}

// Rejection is a design that failed validation.
type Rejection struct {
	Name     string
	Problems []string
}

// Evaluate designs every entry without rendering anything.
func Evaluate(f *File) ([]output.NamedResult, []Rejection) {
	var results []output.NamedResult
	var rejected []Rejection
	for i, entry := range f.Designs {
		name := entry.label(i)
		res, err := converter.Design(entry.Requirement)
		if err != nil {
			rejected = append(rejected, Rejection{Name: name, Problems: problemsOf(err)})
			continue
		}
		results = append(results, output.NamedResult{Name: name, Result: res})
	}
	return results, rejected
}

func problemsOf(err error) []string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Problems
	}
	return []string{err.Error()}
}

// Run designs every entry and renders the results to w. Rejected entries
// are reported and skipped; they never stop the run.
func Run(w io.Writer, f *File, opts Options, saver Saver, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Format == "" {
		opts.Format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(opts.Format); err != nil {
		return Summary{}, err
	}
	if opts.Save && saver == nil {
		return Summary{}, errors.New("saving requested without a result store")
	}

	var summary Summary
	var results []output.NamedResult
	for i, entry := range f.Designs {
		name := entry.label(i)
		res, err := converter.Design(entry.Requirement)
		if err != nil {
			summary.Rejected++
			logger.Warn("design rejected",
				zap.String("op", "batch.Run"),
				zap.String("design", name),
				zap.Error(err),
			)
			if opts.Format == constants.OutputFormatPretty {
				fmt.Fprintf(w, "\n--- %s (%s) ---\n", name, entry.Requirement.Topology.Title())
				_ = output.WriteProblems(w, problemsOf(err))
			}
			continue
		}
		summary.Designed++
		results = append(results, output.NamedResult{Name: name, Result: res})

		if opts.Format == constants.OutputFormatPretty {
			fmt.Fprintf(w, "\n--- %s (%s) ---\n", name, entry.Requirement.Topology.Title())
			if err := output.WriteAdvisories(w, res.Advisories); err != nil {
				return summary, err
			}
			if err := output.WriteReport(w, res); err != nil {
				return summary, err
			}
		}

		if opts.Save {
			path, err := saver.Append(res)
			if err != nil {
				logger.Error("failed to save result",
					zap.String("op", "batch.Run"),
					zap.String("design", name),
					zap.Error(err),
				)
				if opts.Format == constants.OutputFormatPretty {
					fmt.Fprintf(w, "Could not save result: %v\n", err)
				}
				continue
			}
			summary.Saved++
			if opts.Format == constants.OutputFormatPretty {
				fmt.Fprintf(w, "Results saved to %s\n", path)
			}
		}
	}

	if opts.Format == constants.OutputFormatCSV {
		if err := output.CsvFormat(w, results); err != nil {
			return summary, err
		}
	}

	logger.Info("batch complete",
		zap.String("op", "batch.Run"),
		zap.Int("designed", summary.Designed),
		zap.Int("rejected", summary.Rejected),
		zap.Int("saved", summary.Saved),
	)
	return summary, nil
}
