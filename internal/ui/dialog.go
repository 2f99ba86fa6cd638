package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/quantmind-br/qlaunch/internal/fsops"
	"github.com/quantmind-br/qlaunch/internal/security"
)

// Dialog presents alerts, confirmations and path pickers to the user.
// Presentation failures are logged by the implementation and never
// returned: a failed Confirm reads as "no", a failed picker as "nothing
// selected".
type Dialog interface {
	Alert(title, text string)
	Confirm(title, text string) bool
	PickFile(title string, exts []string) (string, bool)
	PickDirectory(title string) (string, bool)
}

// Dialog modes accepted by NewDialog.
const (
	ModeAuto    = "auto"
	ModeNative  = "native"
	ModeConsole = "console"
)

const maxSuggestions = 3

// NewDialog returns the dialog for mode. "auto" and "native" use the
// platform dialogs where they exist; "console" always prompts on the
// terminal.
func NewDialog(mode string, log *zerolog.Logger) Dialog {
	if mode == ModeConsole {
		return NewConsoleDialog(log)
	}
	return NewNativeDialog(log)
}

// ConsoleDialog prompts on a terminal.
type ConsoleDialog struct {
	Prompter Prompter
	Out      io.Writer
	Fs       afero.Fs
	log      *zerolog.Logger
}

// NewConsoleDialog creates a console dialog on stdin/stdout.
func NewConsoleDialog(log *zerolog.Logger) *ConsoleDialog {
	return &ConsoleDialog{
		Prompter: PromptUI{Stdin: os.Stdin, Stdout: os.Stdout},
		Out:      os.Stdout,
		Fs:       afero.NewOsFs(),
		log:      log,
	}
}

// Alert prints a titled message.
func (d *ConsoleDialog) Alert(title, text string) {
	Bold.Fprintln(d.Out, title)
	fmt.Fprintln(d.Out, text)
}

// Confirm prints text and asks title as a yes/no question.
func (d *ConsoleDialog) Confirm(title, text string) bool {
	if text != "" {
		fmt.Fprintln(d.Out, text)
	}

	ok, err := d.Prompter.Confirm(title)
	if err != nil {
		d.logFailure("confirm", err)
		return false
	}
	return ok
}

// PickFile asks for a file path. Input that does not name an existing
// file is still returned, with suggestions printed from its parent
// directory.
func (d *ConsoleDialog) PickFile(title string, exts []string) (string, bool) {
	label := title
	if len(exts) > 0 {
		label = fmt.Sprintf("%s (%s)", title, strings.Join(exts, ", "))
	}

	path, ok := d.ask(label)
	if !ok {
		return "", false
	}

	if !fsops.IsFile(d.Fs, path) {
		d.suggest(path, false)
	}
	return path, true
}

// PickDirectory asks for a directory path.
func (d *ConsoleDialog) PickDirectory(title string) (string, bool) {
	path, ok := d.ask(title)
	if !ok {
		return "", false
	}

	if !fsops.IsDir(d.Fs, path) {
		d.suggest(path, true)
	}
	return path, true
}

func (d *ConsoleDialog) ask(label string) (string, bool) {
	raw, err := d.Prompter.Input(label, ValidateNonEmpty)
	if err != nil {
		d.logFailure("input", err)
		return "", false
	}

	path := security.SanitizePath(raw)
	if path == "" {
		return "", false
	}
	return path, true
}

func (d *ConsoleDialog) suggest(path string, dirs bool) {
	matches := Suggest(d.Fs, path, dirs)
	if len(matches) == 0 {
		return
	}

	Warning.Fprintf(d.Out, "%s not found, did you mean:\n", path)
	for _, m := range matches {
		fmt.Fprintf(d.Out, "  %s %s\n", Bullet, m)
	}
}

func (d *ConsoleDialog) logFailure(what string, err error) {
	if d.log == nil {
		return
	}
	if errors.Is(err, ErrCancelled) {
		d.log.Debug().Str("prompt", what).Msg("prompt cancelled")
		return
	}
	d.log.Warn().Err(err).Str("prompt", what).Msg("console prompt failed")
}

// Suggest returns up to three entries of path's parent directory whose
// names fuzzily match its base name, best match first. With dirs set only
// directories are considered, otherwise only files.
func Suggest(fs afero.Fs, path string, dirs bool) []string {
	parent := filepath.Dir(path)
	base := filepath.Base(path)

	entries, err := afero.ReadDir(fs, parent)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() == dirs {
			names = append(names, e.Name())
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(base, names)
	if len(ranks) == 0 {
		ranks = closeNames(base, names)
	}
	sort.Sort(ranks)

	var out []string
	for i, r := range ranks {
		if i == maxSuggestions {
			break
		}
		out = append(out, filepath.Join(parent, r.Target))
	}
	return out
}

// closeNames catches typos that a subsequence match misses.
func closeNames(base string, names []string) fuzzy.Ranks {
	limit := len(base) / 2
	var ranks fuzzy.Ranks
	for i, name := range names {
		dist := fuzzy.LevenshteinDistance(strings.ToLower(base), strings.ToLower(name))
		if dist <= limit {
			ranks = append(ranks, fuzzy.Rank{Source: base, Target: name, Distance: dist, OriginalIndex: i})
		}
	}
	return ranks
}
