package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/afero"

	"cxxtargs/internal/source"
)

// StdinName is the input name used for "-".
const StdinName = "<stdin>"

// LoadArgs adds each argument as a virtual input named "<arg N>".
func LoadArgs(set *source.InputSet, args []string) []source.InputID {
	ids := make([]source.InputID, len(args))
	for i, a := range args {
		ids[i] = set.AddVirtual(fmt.Sprintf("<arg %d>", i+1), a)
	}
	return ids
}

// LoadReader adds every non-blank line of r under name, keeping 1-based
// line numbers. Lines of any length are accepted.
func LoadReader(set *source.InputSet, name string, r io.Reader) ([]source.InputID, error) {
	var ids []source.InputID
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			text := strings.TrimRight(line, "\n")
			if strings.TrimSpace(text) != "" {
				n, cerr := safecast.Conv[uint32](lineNo)
				if cerr != nil {
					return ids, fmt.Errorf("%s: too many lines: %w", name, cerr)
				}
				ids = append(ids, set.Add(name, n, text, 0))
			}
		}
		if errors.Is(err, io.EOF) {
			return ids, nil
		}
		if err != nil {
			return ids, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
}

// LoadFile reads path through fs, or stdin when path is "-".
func LoadFile(set *source.InputSet, fs afero.Fs, path string, stdin io.Reader) ([]source.InputID, error) {
	if path == "-" {
		return LoadReader(set, StdinName, stdin)
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return LoadReader(set, path, f)
}
