package cwl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
)

func PrintDraws(w io.Writer, draws []Draw) {
	fmt.Fprintf(w, "\n%s\n", heavyRule)
	fmt.Fprintf(w, "Fetched %d draws\n", len(draws))
	fmt.Fprintf(w, "%s\n\n", heavyRule)

	for i, d := range draws {
		fmt.Fprintf(w, "[#%d]\n", i+1)
		fmt.Fprintf(w, "Issue: %s\n", d.IssueCode)
		fmt.Fprintf(w, "Draw date: %s\n", d.DrawDate)
		fmt.Fprintf(w, "Red balls: %s\n", strings.Join(d.RedBalls, ", "))
		fmt.Fprintf(w, "Blue ball: %s\n", d.BlueBall)
		if d.SalesAmount != "" {
			fmt.Fprintf(w, "Sales: %s\n", d.SalesAmount)
		}
		fmt.Fprintln(w, lightRule)
	}
}

// SaveJSON writes draws as an indented JSON array to path, replacing any
// existing file. Non-ASCII text is kept as is. The array is written to a
// temporary file next to path and renamed over it, so a failed save leaves
// the previous file intact.
func SaveJSON(path string, draws []Draw) (err error) {
	if draws == nil {
		draws = []Draw{}
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err = enc.Encode(draws); err != nil {
		return fmt.Errorf("failed to encode draws: %w", err)
	}

	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
