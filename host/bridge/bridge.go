// Package bridge drives I2C devices from the host through an SC18IM704
// style UART-to-I2C bridge adapter. It implements the same Tx interface as
// an on-target I2C bus, so the eeprom driver runs unchanged on top of it.
package bridge

import (
	"errors"
	"fmt"
	"io"

	"eeprom/host/serial"
)

// Bridge command bytes. The adapter reads ASCII-framed commands from its
// UART: 'S' starts an I2C transaction (repeated 'S' issues a repeated
// start), 'P' stops it, 'R' reads an internal register.
const (
	cmdStart   = 'S'
	cmdStop    = 'P'
	cmdReadReg = 'R'

	regI2CStat = 0x0A
)

// I2C status register values reported by the adapter after a transaction.
const (
	statOK      = 0xF0
	statNakAddr = 0xF1
	statNakData = 0xF2
	statTimeout = 0xF8
)

// maxTransfer is the per-direction byte count limit: the frame carries the
// length in a single byte.
const maxTransfer = 255

var (
	ErrTooLong = errors.New("bridge: transfer exceeds 255 bytes")
	ErrNakAddr = errors.New("bridge: device address not acknowledged")
	ErrNakData = errors.New("bridge: data byte not acknowledged")
	ErrTimeout = errors.New("bridge: I2C bus timeout")
)

// Bridge is a host-side I2C transactor over a serial port.
type Bridge struct {
	port serial.Port
}

// New wraps an open serial port to the adapter.
func New(port serial.Port) *Bridge {
	return &Bridge{port: port}
}

// Tx performs one I2C transaction through the adapter: transmit w to the
// device, then, if r is non-empty, receive len(r) bytes with a repeated
// start in between. After the transfer the adapter's I2C status register
// is polled and NAKs are reported as errors.
func (b *Bridge) Tx(addr uint16, w, r []byte) error {
	frame, err := txFrame(uint8(addr), w, len(r))
	if err != nil {
		return err
	}

	if _, err := b.port.Write(frame); err != nil {
		return fmt.Errorf("bridge: writing frame: %w", err)
	}
	if len(r) > 0 {
		if _, err := io.ReadFull(b.port, r); err != nil {
			return fmt.Errorf("bridge: reading %d bytes: %w", len(r), err)
		}
	}

	return b.status()
}

// status reads the adapter's I2C status register and maps it to an error.
func (b *Bridge) status() error {
	if _, err := b.port.Write(statusFrame()); err != nil {
		return fmt.Errorf("bridge: requesting status: %w", err)
	}
	var code [1]byte
	if _, err := io.ReadFull(b.port, code[:]); err != nil {
		return fmt.Errorf("bridge: reading status: %w", err)
	}
	return statusError(code[0])
}

// txFrame builds the command frame for a write, a read, or a combined
// write-then-read transaction with addr (7-bit).
func txFrame(addr uint8, w []byte, readLen int) ([]byte, error) {
	if len(w) > maxTransfer || readLen > maxTransfer {
		return nil, ErrTooLong
	}

	frame := make([]byte, 0, len(w)+8)
	if len(w) > 0 {
		frame = append(frame, cmdStart, addr<<1, byte(len(w)))
		frame = append(frame, w...)
	}
	if readLen > 0 {
		frame = append(frame, cmdStart, addr<<1|1, byte(readLen))
	}
	frame = append(frame, cmdStop)
	return frame, nil
}

// statusFrame builds the register read for the I2C status register.
func statusFrame() []byte {
	return []byte{cmdReadReg, regI2CStat, cmdStop}
}

// statusError maps an I2C status code to an error, nil for success.
func statusError(code byte) error {
	switch code {
	case statOK:
		return nil
	case statNakAddr:
		return ErrNakAddr
	case statNakData:
		return ErrNakData
	case statTimeout:
		return ErrTimeout
	default:
		return fmt.Errorf("bridge: unexpected I2C status 0x%02X", code)
	}
}
