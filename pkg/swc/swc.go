// Package swc reads and writes the SWC serialization of a morphology:
// whitespace-delimited text lines of
//
//	id type x y z radius parent
//
// with comment lines prefixed '#' ignored. Decoded trees go through the
// validating morphology constructor, so a file that parses but encodes
// a broken tree (duplicate IDs, dangling parents, cycles) is rejected.
package swc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

// Decode reads SWC lines from r and builds a morphology.
// Blank lines and '#' comments are skipped. Errors carry the
// INVALID_SWC code and the offending line number.
func Decode(r io.Reader) (*morph.Morphology, error) {
	var records []morph.Node
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSWC, err, "line %d", lineNum)
		}
		records = append(records, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSWC, err, "read")
	}
	return morph.New(records)
}

func parseLine(line string) (morph.Node, error) {
	fields := strings.Fields(line)
	if len(fields) != 7 {
		return morph.Node{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}
	var (
		n   morph.Node
		err error
	)
	if n.ID, err = strconv.Atoi(fields[0]); err != nil {
		return morph.Node{}, fmt.Errorf("id %q: %w", fields[0], err)
	}
	if n.Type, err = strconv.Atoi(fields[1]); err != nil {
		return morph.Node{}, fmt.Errorf("type %q: %w", fields[1], err)
	}
	if n.X, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return morph.Node{}, fmt.Errorf("x %q: %w", fields[2], err)
	}
	if n.Y, err = strconv.ParseFloat(fields[3], 64); err != nil {
		return morph.Node{}, fmt.Errorf("y %q: %w", fields[3], err)
	}
	if n.Z, err = strconv.ParseFloat(fields[4], 64); err != nil {
		return morph.Node{}, fmt.Errorf("z %q: %w", fields[4], err)
	}
	if n.Radius, err = strconv.ParseFloat(fields[5], 64); err != nil {
		return morph.Node{}, fmt.Errorf("radius %q: %w", fields[5], err)
	}
	if n.Parent, err = strconv.Atoi(fields[6]); err != nil {
		return morph.Node{}, fmt.Errorf("parent %q: %w", fields[6], err)
	}
	return n, nil
}

// Encode writes the morphology as SWC lines in node order.
// Coordinates round-trip exactly (shortest float representation).
func Encode(w io.Writer, m *morph.Morphology) error {
	bw := bufio.NewWriter(w)
	for _, n := range m.Records() {
		_, err := fmt.Fprintf(bw, "%d %d %s %s %s %s %d\n",
			n.ID, n.Type,
			formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z),
			formatFloat(n.Radius), n.Parent)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadFile reads and decodes an SWC file.
func ReadFile(path string) (*morph.Morphology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile atomically writes the morphology to an SWC file. The data
// goes to a uniquely named temp file in the target directory, which is
// renamed into place on success and removed on every error path.
func WriteFile(path string, m *morph.Morphology) (err error) {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
