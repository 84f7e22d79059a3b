//go:build unix

package quiet

import (
	"os"

	"golang.org/x/sys/unix"
)

// Silence points descriptors 1 and 2 at /dev/null until Restore.
func Silence() (*Guard, error) {
	null, err := unix.Open("/dev/null", unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	defer unix.Close(null)

	savedOut, err := unix.Dup(unix.Stdout)
	if err != nil {
		return nil, err
	}
	savedErr, err := unix.Dup(unix.Stderr)
	if err != nil {
		unix.Close(savedOut)
		return nil, err
	}
	unix.CloseOnExec(savedOut)
	unix.CloseOnExec(savedErr)

	g := &Guard{
		stdout: os.NewFile(uintptr(savedOut), "/dev/stdout"),
		stderr: os.NewFile(uintptr(savedErr), "/dev/stderr"),
	}
	if err := redirect(null, unix.Stdout); err != nil {
		g.stdout.Close()
		g.stderr.Close()
		return nil, err
	}
	if err := redirect(null, unix.Stderr); err != nil {
		redirect(savedOut, unix.Stdout)
		g.stdout.Close()
		g.stderr.Close()
		return nil, err
	}
	return g, nil
}

func restore(g *Guard) error {
	errOut := redirect(int(g.stdout.Fd()), unix.Stdout)
	errErr := redirect(int(g.stderr.Fd()), unix.Stderr)
	g.stdout.Close()
	g.stderr.Close()
	g.stderr = os.Stderr
	if errOut != nil {
		return errOut
	}
	return errErr
}
