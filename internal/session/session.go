// Package session runs the interactive text menu: it prompts for a
// topology's requirements, runs the design pipeline, prints the report and
// offers to append the result to the topology's log file.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/converter"
	"github.com/iwvelando/converter-design/pkg/output"
	"github.com/iwvelando/converter-design/pkg/validation"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ErrInputClosed is returned when standard input ends or cannot be read.
// It is the only condition that ends a session unsuccessfully.
var ErrInputClosed = errors.New("input error")

// Saver persists a design result and returns where it went.
type Saver interface {
	Append(res converter.Result) (string, error)
}

// Session is one interactive run of the menu.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	saver  Saver
	logger *zap.Logger
}

// New returns a Session reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, saver Saver, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		in:     bufio.NewReader(in),
		out:    out,
		saver:  saver,
		logger: logger,
	}
}

// Run shows the menu until the user picks Exit (nil) or input ends
// (ErrInputClosed).
func (s *Session) Run() error {
	for {
		s.printMenu()
		choice, err := s.readMenuChoice()
		if err != nil {
			return err
		}
		if choice == constants.MenuExit {
			s.printf("Bye!\n")
			return nil
		}

		topology := converter.Topologies[choice-1]
		if err := s.RunTopology(topology); err != nil {
			return err
		}
		if err := s.waitForBack(); err != nil {
			return err
		}
	}
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) printMenu() {
	s.printf("\n----------- Main menu -----------\n\n")
	for i, t := range converter.Topologies {
		s.printf("\t%d. %s\n", i+1, t.Title())
	}
	s.printf("\t%d. Exit\n\n", constants.MenuExit)
	s.printf("---------------------------------\n")
}

// readLine returns one line without its line ending. A final line without a
// newline is still returned; the following call reports ErrInputClosed.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		s.logger.Debug("input ended",
			zap.String("op", "session.readLine"),
			zap.Error(err),
		)
		return "", ErrInputClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// isInteger reports whether text is an optional sign followed by one or
// more decimal digits.
func isInteger(text string) bool {
	if text != "" && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Session) readMenuChoice() (int, error) {
	for {
		s.printf("\nSelect item: ")
		line, err := s.readLine()
		if err != nil {
			s.printf("\nInput error. Exiting.\n")
			return 0, err
		}

		if !isInteger(line) {
			s.printf("Enter an integer!\n")
			continue
		}
		value, err := strconv.Atoi(line)
		if err != nil || value < 1 || value > constants.MenuItems {
			s.printf("Invalid menu item!\n")
			continue
		}
		return value, nil
	}
}

func (s *Session) waitForBack() error {
	for {
		s.printf("\nEnter 'b' or 'B' to go back to main menu: ")
		line, err := s.readLine()
		if err != nil {
			s.printf("\nInput error. Exiting.\n")
			return err
		}
		if line == "b" || line == "B" {
			return nil
		}
	}
}

// readNumber prompts until the answer parses as a finite number.
func (s *Session) readNumber(text string) (float64, error) {
	for {
		s.printf("%s: ", text)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		value, err := cast.ToFloat64E(strings.TrimSpace(line))
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			s.printf("Enter a number!\n")
			continue
		}
		return value, nil
	}
}

type prompt struct {
	text  string
	field *float64
}

// readRequirement prompts for every field the topology uses, in the order
// the menu has always asked for them.
func (s *Session) readRequirement(t converter.Topology) (converter.Requirement, error) {
	req := converter.Requirement{Topology: t}

	voutPrompt := "Enter output voltage"
	if t.Inverting() {
		voutPrompt = "Enter output voltage magnitude (positive value)"
	}
	prompts := []prompt{
		{"Enter maximum input voltage", &req.VinMax},
		{"Enter minimum input voltage", &req.VinMin},
		{voutPrompt, &req.Vout},
		{"Enter output power", &req.Pout},
		{"Enter switching frequency", &req.FSwitch},
	}
	if t == converter.Cuk {
		prompts = append(prompts,
			prompt{"Enter first inductor current ripple (% of IL1)", &req.RippleI1Percent},
			prompt{"Enter second inductor current ripple (% of IL2)", &req.RippleI2Percent},
			prompt{"Enter output voltage ripple (% of Vout)", &req.RippleVPercent},
			prompt{"Enter Cn voltage ripple (% of Vin)", &req.RippleVCnPercent},
		)
	} else {
		prompts = append(prompts,
			prompt{"Enter inductor current ripple (in percent)", &req.RippleIPercent},
			prompt{"Enter output voltage ripple (% of Vout)", &req.RippleVPercent},
		)
	}

	for _, p := range prompts {
		value, err := s.readNumber(p.text)
		if err != nil {
			return req, err
		}
		*p.field = value
	}
	return req, nil
}

// RunTopology runs one design pipeline. Invalid requirements and failed
// saves are reported to the user and are not errors; only closed input is.
func (s *Session) RunTopology(t converter.Topology) error {
	s.printf("\n>> %s\n", t.Title())

	req, err := s.readRequirement(t)
	if err != nil {
		return err
	}

	res, err := converter.Design(req)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			_ = output.WriteProblems(s.out, verr.Problems)
		} else {
			s.printf("ERROR: %v\n", err)
		}
		s.printf("\nInvalid input\n")
		s.logger.Debug("requirement rejected",
			zap.String("op", "session.RunTopology"),
			zap.String("topology", t.String()),
			zap.Error(err),
		)
		return nil
	}

	s.logger.Debug("design computed",
		zap.String("op", "session.RunTopology"),
		zap.String("topology", t.String()),
		zap.Float64("duty_cycle", res.DutyCycle),
		zap.String("mode", res.Mode()),
	)

	_ = output.WriteAdvisories(s.out, res.Advisories)
	if err := output.WriteReport(s.out, res); err != nil {
		s.logger.Warn("failed to write report",
			zap.String("op", "session.RunTopology"),
			zap.Error(err),
		)
	}

	s.printf("\nSave result to file? (y/n): ")
	answer, err := s.readLine()
	if err != nil {
		// The back-to-menu prompt reports the closed input.
		return nil
	}
	answer = strings.TrimSpace(answer)
	if answer == "" || (answer[0] != 'y' && answer[0] != 'Y') {
		return nil
	}

	if s.saver == nil {
		s.printf("Saving is not available.\n")
		return nil
	}
	path, err := s.saver.Append(res)
	if err != nil {
		s.printf("Could not save result: %v\n", err)
		s.logger.Error("failed to save result",
			zap.String("op", "session.RunTopology"),
			zap.String("topology", t.String()),
			zap.Error(err),
		)
		return nil
	}
	s.printf("Results saved to %s\n", path)
	return nil
}
