// Package engine scans template files for value macros and mirrors them
// into a live directory with the macros replaced by their configured
// tweaks. Macro syntax is one per line:
//
//	<prefix>@<macro_name>|<default_value>@<suffix>
//
// where the macro name is lowercase letters and underscores. Lines without
// a macro pass through untouched. More than one macro on a line is not
// supported; the leading group is greedy, so only the last @...@ span on a
// line is treated as the macro.
package engine

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tweakgen/tweakgen/pkg/errors"
	"github.com/tweakgen/tweakgen/pkg/logging"
	"github.com/tweakgen/tweakgen/pkg/textfile"
	"github.com/tweakgen/tweakgen/pkg/tweak"
)

var log = logging.GetLogger("engine")

var macroRe = regexp.MustCompile(`^(?P<start>.*)@(?P<name>[a-z_]+)\|(?P<default>.*?)@(?P<end>.*)$`)

// Processor applies a tweak catalog to template files. It is strictly
// sequential: one file is fully read, transformed and committed before the
// next is started, and the first fatal error aborts the whole run.
type Processor struct {
	catalog  *tweak.Catalog
	fallback tweak.Action
	out      io.Writer
	warnings int
}

// New returns a processor emitting per-file progress messages to out.
func New(catalog *tweak.Catalog, out io.Writer) *Processor {
	return &Processor{
		catalog:  catalog,
		fallback: tweak.DefaultAction{},
		out:      out,
	}
}

// Warnings reports how many macros were encountered without a catalog
// entry. Missing mappings are recoverable and never affect the exit
// status; the count is exposed for reporting.
func (p *Processor) Warnings() int {
	return p.warnings
}

// Run processes every file under templateRoot, mirroring the relative
// paths into liveRoot. Enumeration order is not depended upon.
func (p *Processor) Run(templateRoot, liveRoot string) error {
	return filepath.WalkDir(templateRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "cannot walk %s", path)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(templateRoot, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot relativize %s", path)
		}
		return p.ProcessFile(templateRoot, liveRoot, rel)
	})
}

// ProcessFile transforms a single template, identified by its path
// relative to templateRoot, into the mirrored location under liveRoot.
func (p *Processor) ProcessFile(templateRoot, liveRoot, rel string) error {
	fmt.Fprintf(p.out, "Processing: %s\n", rel)
	log.Info().Str("file", rel).Msg("Processing template")

	dstPath := filepath.Join(liveRoot, rel)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"cannot create live directory for %s", rel)
	}

	f, err := textfile.Read(filepath.Join(templateRoot, rel))
	if err != nil {
		return err
	}

	w := textfile.NewWriter(dstPath, f.Encoding)
	for _, line := range f.Lines {
		out, err := p.rewriteLine(line)
		if err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "in %s", rel)
		}
		if err := w.WriteLine(out); err != nil {
			return err
		}
	}
	return w.Commit()
}

// rewriteLine substitutes the macro on a line, if any. A macro with no
// catalog entry logs a warning and keeps its default.
func (p *Processor) rewriteLine(line string) (string, error) {
	m := macroRe.FindStringSubmatch(line)
	if m == nil {
		return line, nil
	}
	start, name, def, end := m[1], m[2], m[3], m[4]

	action, ok := p.catalog.Resolve(name)
	if !ok {
		p.warnings++
		log.Warn().Str("macro", name).Msg("Tweak key not found, using default")
		action = p.fallback
	}

	value, err := action.Apply(name, def)
	if err != nil {
		return "", err
	}
	return start + value + end, nil
}
