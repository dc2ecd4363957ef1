// Package i2cbus tracks which 7-bit device addresses on an I2C bus are
// claimed by a driver. A driver obtains a DeviceHandle at construction and
// releases it on teardown; the bus refuses a second claim on the same
// address, so two drivers can never talk over each other.
package i2cbus

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Address is a 7-bit I2C device address.
type Address uint8

const addressMax = 0x7F

var (
	ErrAddrInvalid = errors.New("i2cbus: address is not a 7-bit I2C address")
	ErrAddrClaimed = errors.New("i2cbus: address already claimed")
	ErrReleased    = errors.New("i2cbus: device handle released")
)

// Bus wraps an I2C transactor and the claim registry for its addresses.
// A Bus is not safe for concurrent use; callers serialize access, matching
// the bus hardware itself, which runs one transaction at a time.
type Bus struct {
	i2c     drivers.I2C
	claimed [addressMax + 1]bool
}

// New wraps an already-configured I2C transactor.
func New(i2c drivers.I2C) *Bus {
	return &Bus{i2c: i2c}
}

// AddDevice claims addr exclusively and returns a handle for transacting
// with the device behind it.
func (b *Bus) AddDevice(addr Address) (*DeviceHandle, error) {
	if addr > addressMax {
		return nil, ErrAddrInvalid
	}
	if b.claimed[addr] {
		return nil, ErrAddrClaimed
	}
	b.claimed[addr] = true
	return &DeviceHandle{bus: b, addr: addr}, nil
}

// DeviceHandle is the registered connection to one device at one address.
// Exactly one live handle exists per claimed address. After Close the
// handle is inert: transactions fail with ErrReleased and further Close
// calls do nothing.
type DeviceHandle struct {
	bus  *Bus
	addr Address
}

// Addr returns the device address this handle is bound to.
func (h *DeviceHandle) Addr() Address {
	return h.addr
}

// Tx performs one bus transaction with the device: transmit w, then, if r
// is non-empty, receive len(r) bytes with a repeated start in between.
func (h *DeviceHandle) Tx(w, r []byte) error {
	if h.bus == nil {
		return ErrReleased
	}
	return h.bus.i2c.Tx(uint16(h.addr), w, r)
}

// Close releases the address claim. The first call deregisters; later
// calls are no-ops.
func (h *DeviceHandle) Close() error {
	if h.bus == nil {
		return nil
	}
	h.bus.claimed[h.addr] = false
	h.bus = nil
	return nil
}
