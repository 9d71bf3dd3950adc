package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

const indent = "    "

// UIManager handles all user interface concerns (progress, verbose output, prompts)
type UIManager interface {
	// Progress bars
	NewProgressBar(total int, description string) ProgressBar
	NewSpinner(description string) ProgressBar

	// Verbose output
	Verbose(format string, args ...any)

	// Status messages
	Printf(format string, args ...any)
	Println(args ...any)

	// Styled messages for the interactive session
	Header(title string)
	Rule()
	Prompt(label string)
	Success(format string, args ...any)
	Failure(format string, args ...any)
	Hint(format string, args ...any)
	Detail(label, value string)
}

// ProgressBar interface abstracts progress bar operations
type ProgressBar interface {
	Set(current int)
	Advance()
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations
type StandardUIManager struct {
	out      io.Writer
	verbose  bool
	quiet    bool
	animated bool
}

// NewUIManager writes to stdout. Progress animation is disabled when stdout is not a terminal.
func NewUIManager(verbose, quiet bool) UIManager {
	fd := os.Stdout.Fd()
	animated := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return newUIManager(os.Stdout, verbose, quiet, animated)
}

func newUIManager(out io.Writer, verbose, quiet, animated bool) *StandardUIManager {
	return &StandardUIManager{
		out:      out,
		verbose:  verbose,
		quiet:    quiet,
		animated: animated,
	}
}

// Progress Bar Methods
func (ui *StandardUIManager) NewProgressBar(total int, description string) ProgressBar {
	if ui.quiet || !ui.animated {
		return &SilentProgressBar{bar: progressbar.DefaultSilent(int64(total))}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(indent+description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "▓",
			SaucerHead:    "▓",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}))
	return &VisibleProgressBar{bar: bar}
}

func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	if ui.quiet || !ui.animated {
		return &SilentProgressBar{bar: progressbar.DefaultSilent(-1)}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &VisibleProgressBar{bar: bar}
}

// Verbose Output Methods
func (ui *StandardUIManager) Verbose(format string, args ...any) {
	if ui.verbose {
		fmt.Fprintf(ui.out, format, args...)
	}
}

// Status Message Methods
func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintf(ui.out, format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Fprintln(ui.out, args...)
	}
}

func (ui *StandardUIManager) Header(title string) {
	if ui.quiet {
		return
	}
	fmt.Fprintln(ui.out, headerStyle.Render("✨ "+title+" ✨"))
	fmt.Fprintln(ui.out, ruleStyle.Render(strings.Repeat("═", len(title)+6)))
	fmt.Fprintln(ui.out)
}

func (ui *StandardUIManager) Rule() {
	if !ui.quiet {
		fmt.Fprintln(ui.out, ruleStyle.Render(strings.Repeat("─", 40)))
	}
}

// Prompt is printed even in quiet mode, the user has to know input is expected
func (ui *StandardUIManager) Prompt(label string) {
	fmt.Fprint(ui.out, indent+promptStyle.Render(label)+" ")
}

func (ui *StandardUIManager) Success(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintln(ui.out, indent+successStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// Failure is printed even in quiet mode
func (ui *StandardUIManager) Failure(format string, args ...any) {
	fmt.Fprintln(ui.out, indent+failureStyle.Render("❌ "+fmt.Sprintf(format, args...)))
}

func (ui *StandardUIManager) Hint(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintln(ui.out, indent+hintStyle.Render("💡 "+fmt.Sprintf(format, args...)))
	}
}

func (ui *StandardUIManager) Detail(label, value string) {
	if !ui.quiet {
		fmt.Fprintf(ui.out, "%s%s %s\n", indent, mutedStyle.Render(label+":"), valueStyle.Render(value))
	}
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Set(current int) {
	_ = v.bar.Set(current)
}

func (v *VisibleProgressBar) Advance() {
	_ = v.bar.Add(1)
}

func (v *VisibleProgressBar) Describe(description string) {
	v.bar.Describe(description)
}

func (v *VisibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

// SilentProgressBar implements a silent progress bar
type SilentProgressBar struct {
	bar *progressbar.ProgressBar
}

func (s *SilentProgressBar) Set(current int) {
	_ = s.bar.Set(current)
}

func (s *SilentProgressBar) Advance() {
	_ = s.bar.Add(1)
}

func (s *SilentProgressBar) Describe(description string) {
	// Do nothing for silent mode
}

func (s *SilentProgressBar) Finish() {
	_ = s.bar.Finish()
}

// NopUI returns a UIManager that discards everything
func NopUI() UIManager {
	return newUIManager(io.Discard, false, true, false)
}
