// Package at24c implements a driver for the Atmel AT24C256 two-wire serial
// EEPROM: 32 KiB of byte-addressable storage organized as 512 pages of 64
// bytes. The chip accepts writes only within a single page per transaction
// and needs a settle pause after each one while its internal write cycle
// completes; this package hides both behind a flat address space.
//
// The driver is synchronous and blocking, and a Device is not safe for
// concurrent use — the chip itself cannot overlap transactions, so callers
// that share a Device across goroutines must serialize access themselves.
package at24c

import (
	"errors"
	"time"

	"eeprom/i2cbus"
)

// Device geometry. Addresses run 0x0000..0x7FFF (15 bits); bit 15 of the
// address word is reserved and never valid.
const (
	PageSize   = 64
	PageCount  = 512
	MemorySize = PageSize * PageCount // 32768

	// DefaultAddress is the chip's base I2C address with A0..A2 strapped low.
	DefaultAddress = 0x50

	// DefaultWriteCycleTime is the pause after each transaction. The
	// datasheet worst case for the internal write cycle is 5 ms; 25 ms
	// leaves margin for slow supplies and is what the chip was validated
	// against. The chip does not acknowledge bus activity during the
	// cycle, so the pause is mandatory, not advisory.
	DefaultWriteCycleTime = 25 * time.Millisecond
)

const reservedAddrBit = 0x8000

var (
	ErrAddressRange = errors.New("at24c: address out of range")
	ErrWriteRange   = errors.New("at24c: write extends past end of memory")
	ErrPageBoundary = errors.New("at24c: write crosses a page boundary")
	ErrCount        = errors.New("at24c: element count exceeds container length")
)

// Config holds construction-time options for a Device. The zero value
// selects the default chip address, checked mode, and the default write
// cycle pause.
type Config struct {
	// Address is the chip's 7-bit I2C address. 0 means DefaultAddress.
	Address uint8

	// Unchecked disables all precondition checks. Calls go straight to
	// the bus; out-of-range addresses and oversized payloads produce
	// whatever the chip does with them. The address arithmetic is
	// unaffected — only validation and its failure reporting are skipped.
	Unchecked bool

	// WriteCycleTime overrides the post-transaction pause. 0 means
	// DefaultWriteCycleTime; a negative value disables the pause
	// entirely (useful against bus emulators that have no write cycle).
	WriteCycleTime time.Duration
}

// Device is a driver bound to one AT24C256 on one bus. Use it by pointer
// and do not copy it: the Device owns its address claim, and Close must
// release that claim exactly once.
type Device struct {
	handle    *i2cbus.DeviceHandle
	devAddr   uint8
	unchecked bool
	settle    time.Duration
}

// New registers a device at cfg.Address on the bus and returns a driver
// bound to it. Registration fails if the address is already claimed.
func New(bus *i2cbus.Bus, cfg Config) (*Device, error) {
	addr := cfg.Address
	if addr == 0 {
		addr = DefaultAddress
	}

	handle, err := bus.AddDevice(i2cbus.Address(addr))
	if err != nil {
		return nil, err
	}
	debugLog(addr, "registered device")

	settle := cfg.WriteCycleTime
	if settle == 0 {
		settle = DefaultWriteCycleTime
	}

	return &Device{
		handle:    handle,
		devAddr:   addr,
		unchecked: cfg.Unchecked,
		settle:    settle,
	}, nil
}

// Close deregisters the device from the bus. The first call releases the
// address claim; later calls are no-ops. Operations after Close fail with
// i2cbus.ErrReleased.
func (d *Device) Close() error {
	debugLog(d.devAddr, "deregistering device")
	return d.handle.Close()
}

// WriteByte writes a single byte at addr.
func (d *Device) WriteByte(addr uint16, b byte) error {
	if !d.unchecked {
		if addr >= MemorySize {
			debugLog(d.devAddr, "write: address 0x"+hex16(addr)+" out of range")
			return ErrAddressRange
		}
	}

	payload := [3]byte{byte(addr >> 8), byte(addr), b}
	if err := d.handle.Tx(payload[:], nil); err != nil {
		debugLog(d.devAddr, "write failed @ 0x"+hex16(addr)+": "+err.Error())
		return err
	}

	debugLog(d.devAddr, "wrote byte 0x"+hex8(b)+" @ 0x"+hex16(addr))
	d.pause()
	return nil
}

// Write writes buf starting at addr, splitting the span into single-page
// transactions. Pages are written in ascending order and the write aborts
// on the first failed page; pages already written stay written. There is
// no atomicity across pages — callers that need it must verify above this
// layer.
func (d *Device) Write(addr uint16, buf []byte) error {
	if !d.unchecked {
		if !InRange(addr, len(buf)) {
			debugLog(d.devAddr, "write: 0x"+hex16(addr)+"+"+itoa(len(buf))+" exceeds memory size")
			return ErrWriteRange
		}
	}
	if len(buf) == 0 {
		return nil
	}

	startPage, _, pages := PageSpan(addr, len(buf))
	cur := addr
	remaining := buf

	debugLog(d.devAddr, "write: "+itoa(len(buf))+" bytes @ 0x"+hex16(addr)+" across "+itoa(pages)+" page(s)")

	for i := 0; i < pages; i++ {
		nextPageAddr := (uint32(startPage) + uint32(i) + 1) * PageSize
		chunk := int(nextPageAddr - uint32(cur))
		if chunk > len(remaining) {
			chunk = len(remaining)
		}

		if err := d.WritePage(cur, remaining[:chunk]); err != nil {
			debugLog(d.devAddr, "write aborted @ 0x"+hex16(cur)+" with "+itoa(len(remaining))+" bytes left")
			return err
		}

		cur += uint16(chunk)
		remaining = remaining[chunk:]
	}

	return nil
}

// WritePage writes buf at addr within a single page. The span must not
// cross a page boundary; use Write for arbitrary spans. Callable directly
// when the caller has already laid data out page-aligned.
func (d *Device) WritePage(addr uint16, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	if !d.unchecked {
		if addr&reservedAddrBit != 0 {
			debugLog(d.devAddr, "write_page: address 0x"+hex16(addr)+" out of range")
			return ErrAddressRange
		}
		if _, _, pages := PageSpan(addr, len(buf)); pages != 1 {
			debugLog(d.devAddr, "write_page: span @ 0x"+hex16(addr)+" crosses a page boundary")
			return ErrPageBoundary
		}
	}

	payload := make([]byte, 2+len(buf))
	payload[0] = byte(addr >> 8)
	payload[1] = byte(addr)
	copy(payload[2:], buf)

	if err := d.handle.Tx(payload, nil); err != nil {
		debugLog(d.devAddr, "page write failed @ 0x"+hex16(addr)+": "+err.Error())
		return err
	}

	debugLog(d.devAddr, "wrote "+itoa(len(buf))+" bytes @ 0x"+hex16(addr))
	d.pause()
	return nil
}

// ReadByte reads the byte at addr.
func (d *Device) ReadByte(addr uint16) (byte, error) {
	var b [1]byte
	if err := d.Read(addr, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Read fills buf with len(buf) bytes starting at addr in one transaction.
// Reads are not page-restricted, and a read extending past the last
// address wraps to 0x0000 on the chip side — only the starting address is
// validated.
func (d *Device) Read(addr uint16, buf []byte) error {
	if !d.unchecked {
		if addr&reservedAddrBit != 0 {
			debugLog(d.devAddr, "read: address 0x"+hex16(addr)+" out of range")
			return ErrAddressRange
		}
	}
	if len(buf) == 0 {
		return nil
	}

	word := [2]byte{byte(addr >> 8), byte(addr)}
	if err := d.handle.Tx(word[:], buf); err != nil {
		debugLog(d.devAddr, "read failed @ 0x"+hex16(addr)+": "+err.Error())
		return err
	}

	debugLog(d.devAddr, "read "+itoa(len(buf))+" bytes @ 0x"+hex16(addr))
	d.pause()
	return nil
}

// pause blocks for the write cycle settle time. The chip ignores the bus
// while its internal write cycle runs, so every transaction waits it out
// before the next one may start.
func (d *Device) pause() {
	if d.settle > 0 {
		time.Sleep(d.settle)
	}
}
