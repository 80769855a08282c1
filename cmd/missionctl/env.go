package main

import (
	"io"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/alnah/mission-control/internal/dashboard"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// DefaultData is the dataset used without a data directory.
	DefaultData fs.FS

	// Listen opens the dashboard listener.
	Listen func(network, addr string) (net.Listener, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		DefaultData: dashboard.DefaultFS(),
		Listen:      net.Listen,
	}
}
