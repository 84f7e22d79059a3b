package quiet

import (
	"os"

	"golang.org/x/sys/windows"
)

// Silence points the process standard handles at NUL until Restore. Plugins
// that captured their C runtime streams before this point keep writing to
// the console.
func Silence() (*Guard, error) {
	name, err := windows.UTF16PtrFromString("NUL")
	if err != nil {
		return nil, err
	}
	null, err := windows.CreateFile(name, windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE, nil, windows.OPEN_EXISTING, 0, 0)
	if err != nil {
		return nil, err
	}

	savedOut, _ := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	savedErr, _ := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err := windows.SetStdHandle(windows.STD_OUTPUT_HANDLE, null); err != nil {
		windows.CloseHandle(null)
		return nil, err
	}
	if err := windows.SetStdHandle(windows.STD_ERROR_HANDLE, null); err != nil {
		windows.SetStdHandle(windows.STD_OUTPUT_HANDLE, savedOut)
		windows.CloseHandle(null)
		return nil, err
	}

	// os.Stderr still holds the console handle it was created with.
	return &Guard{
		stdout: os.NewFile(uintptr(null), "NUL"),
		stderr: os.Stderr,
		saved:  [2]uintptr{uintptr(savedOut), uintptr(savedErr)},
	}, nil
}

func restore(g *Guard) error {
	errOut := windows.SetStdHandle(windows.STD_OUTPUT_HANDLE, windows.Handle(g.saved[0]))
	errErr := windows.SetStdHandle(windows.STD_ERROR_HANDLE, windows.Handle(g.saved[1]))
	// stdout holds the NUL handle here.
	g.stdout.Close()
	if errOut != nil {
		return errOut
	}
	return errErr
}
