// Package execpipe pipes text through an external command, typically a
// source formatter such as goimports or a PHP pretty printer reading stdin.
package execpipe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/goaux/stacktrace/v2"
)

// ErrEmptyCommand is returned for a command line without an executable.
var ErrEmptyCommand = errors.New("empty command")

// CheckCommand checks if the executable of the command line exists in the
// system's PATH. It returns an error if the executable is not found, or nil
// if it is.
func CheckCommand(command string) error {
	name, _, err := split(command)
	if err != nil {
		return err
	}
	_, err = stacktrace.Trace2(exec.LookPath(name))
	return err
}

// Run executes the command line, feeding r to its stdin and writing its
// stdout to w.
//
// The command line is split on white space; the first field names the
// executable, the rest are its arguments. No shell is involved.
//
// The returned error includes the command name, the underlying error, and
// the captured stderr.
func Run(ctx context.Context, w io.Writer, r io.Reader, command string) error {
	name, args, err := split(command)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r
	cmd.Stdout = w
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	if err := stacktrace.Trace(cmd.Run()); err != nil {
		return fmt.Errorf("error: %s, cause=%w, stderr=%q", name, err, stderr.String())
	}
	return nil
}

// Filter runs the command line over text and returns its output.
func Filter(ctx context.Context, text, command string) (string, error) {
	out := new(strings.Builder)
	if err := Run(ctx, out, strings.NewReader(text), command); err != nil {
		return "", err
	}
	return out.String(), nil
}

func split(command string) (string, []string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, ErrEmptyCommand
	}
	return fields[0], fields[1:], nil
}
