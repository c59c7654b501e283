package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const removePrompt = "Are you sure you'd like to clear all embedded images? [y/N] "

// Confirm writes prompt to out and reads one line from in. It returns true
// only when the answer starts with 'y' or 'Y'. End of input counts as no.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	answer := strings.TrimSpace(line)
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y"), nil
}
