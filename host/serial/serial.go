// Package serial provides the serial port abstraction used by the host
// tools to reach a UART-attached I2C bridge adapter.
package serial

import "io"

// Port is the serial port interface. The indirection keeps the bridge and
// CLI testable against an in-memory implementation.
type Port interface {
	io.ReadWriteCloser

	// Flush discards unread input buffered on the port.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate. SC18IM-style bridges come up at 9600.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns a configuration suitable for a UART-to-I2C bridge
// adapter fresh out of reset.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        9600,
		ReadTimeout: 500,
	}
}
