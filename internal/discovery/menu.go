package discovery

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrAborted is returned by Select when the user chooses 0 or input ends.
var ErrAborted = errors.New("selection aborted")

const rule = "=================================================="

// Select prints a numbered menu of candidates to out and reads choices from in
// until a valid one is entered. 0 aborts.
func Select(in io.Reader, out io.Writer, candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}

	fmt.Fprintln(out, rule)
	for i, c := range candidates {
		preview := c.Preview
		switch {
		case c.PreviewErr != nil:
			preview = "read failed"
		case preview == "":
			preview = "empty"
		}
		fmt.Fprintf(out, "[%d] %s  | First line: %s\n", i+1, c.Name, preview)
	}
	fmt.Fprintln(out, rule)

	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	for {
		fmt.Fprintf(out, "Choose a file (1-%d) or 0 to exit: ", len(candidates))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return Candidate{}, ErrAborted
		}
		choice, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintln(out, "Enter a number!")
			continue
		}
		if choice == 0 {
			fmt.Fprintln(out, "Exiting.")
			return Candidate{}, ErrAborted
		}
		if choice >= 1 && choice <= len(candidates) {
			return candidates[choice-1], nil
		}
		fmt.Fprintln(out, "Invalid choice. Try again.")
	}
}
