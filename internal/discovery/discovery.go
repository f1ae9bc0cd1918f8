// Package discovery finds candidate order files in the incoming directory and
// lets the user pick one.
package discovery

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"orderimport/internal/core"
)

var (
	ErrDirNotFound  = errors.New("incoming directory does not exist")
	ErrNotDirectory = errors.New("incoming path is not a directory")
	ErrNoCandidates = errors.New("no order files found")
)

// Candidate is a file that looks like an order file.
type Candidate struct {
	Path    string
	Name    string
	Preview string
	// PreviewErr is set when the first line could not be read.
	PreviewErr error
}

// Find lists the regular files in dir, sorted by name, that look like order
// files. probeLines bounds the number of non-blank lines inspected per file.
func Find(dir string, probeLines int) ([]Candidate, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var out []Candidate
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !LooksLikeOrderFile(path, probeLines) {
			continue
		}
		c := Candidate{Path: path, Name: e.Name()}
		c.Preview, c.PreviewErr = Preview(path)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s (expected ';'-separated lines: orderId;customerId;amount)", ErrNoCandidates, dir)
	}
	return out, nil
}

// LooksLikeOrderFile reports whether one of the first maxLines non-blank
// lines of path has the shape of an order. A negative amount still counts as
// order-shaped; a header line simply fails to match and the probe moves on.
func LooksLikeOrderFile(path string, maxLines int) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	tested := 0
	for tested < maxLines && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		tested++
		_, err := core.ParseLine(line)
		if err == nil || errors.Is(err, core.ErrNegativeAmount) {
			return true
		}
	}
	return false
}

// Preview returns the first line of path, or "" for an empty file.
func Preview(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return sc.Text(), nil
	}
	return "", sc.Err()
}
