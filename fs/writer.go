// Package fs provides file-based output for company profiles.
package fs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/coprofile"
)

// WritePrettyJSON writes profiles as a single JSON array indented with two
// spaces. An empty batch is written as [].
func WritePrettyJSON(w io.Writer, profiles []*coprofile.CompanyProfile) error {
	if profiles == nil {
		profiles = []*coprofile.CompanyProfile{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(profiles); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return nil
}

// WriteJSONL writes one compact JSON object per line. An empty batch
// produces no output.
func WriteJSONL(w io.Writer, profiles []*coprofile.CompanyProfile) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, p := range profiles {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode profile %d: %w", i, err)
		}
	}
	return nil
}

// ReadPrettyJSON reads a JSON array of profiles.
func ReadPrettyJSON(r io.Reader) ([]*coprofile.CompanyProfile, error) {
	var profiles []*coprofile.CompanyProfile
	if err := json.NewDecoder(r).Decode(&profiles); err != nil {
		return nil, coprofile.Errorf(coprofile.EINVALID, "decode profiles: %v", err)
	}
	return profiles, nil
}

// ReadJSONL reads one profile per line. Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]*coprofile.CompanyProfile, error) {
	profiles := []*coprofile.CompanyProfile{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var p coprofile.CompanyProfile
		if err := json.Unmarshal([]byte(text), &p); err != nil {
			return nil, coprofile.Errorf(coprofile.EINVALID, "decode line %d: %v", line, err)
		}
		profiles = append(profiles, &p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return profiles, nil
}

// JSONLPath returns the sibling JSONL path of a JSON output path: the
// extension is replaced with .jsonl.
func JSONLPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
}

// Ensure Writer implements coprofile.ProfileWriter at compile time.
var _ coprofile.ProfileWriter = (*Writer)(nil)

// Writer writes a batch of profiles to a pretty JSON file and its JSONL
// sibling. Each file is written to a temporary path first and renamed into
// place, so a failed write never leaves a truncated output behind.
type Writer struct {
	path string
}

// NewWriter creates a Writer for the JSON output at path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Paths returns the JSON and JSONL output paths.
func (w *Writer) Paths() (jsonPath, jsonlPath string) {
	return w.path, JSONLPath(w.path)
}

// WriteAll writes profiles to both outputs, creating parent directories.
func (w *Writer) WriteAll(profiles []*coprofile.CompanyProfile) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	jsonPath, jsonlPath := w.Paths()
	if err := writeFile(jsonPath, profiles, WritePrettyJSON); err != nil {
		return err
	}
	return writeFile(jsonlPath, profiles, WriteJSONL)
}

func writeFile(path string, profiles []*coprofile.CompanyProfile, write func(io.Writer, []*coprofile.CompanyProfile) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw, profiles); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	// Atomically rename temp to final
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
