package signalhandler

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"psnreval/logging"
)

// ExitCode maps a terminating signal onto the shell convention 128+n
func ExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

// SetupHandler closes the debug log and exits when the run is interrupted.
// OpenCV work happens in cgo calls that cannot be cancelled, so the process
// exits instead of unwinding.
func SetupHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logging.LogWarning("Received %v, exiting", sig)
		logging.CloseLogger()
		fmt.Fprintln(os.Stderr, "Interrupted.")
		os.Exit(ExitCode(sig))
	}()
}
