package at24c

import "unsafe"

// Generic value and slice access on top of the byte driver.
//
// These functions treat a value's in-memory representation — padding
// included — as an opaque blob: no endianness conversion, no field
// re-encoding, a bit-exact round trip. The type argument must therefore
// have a fixed layout: integers, floats, arrays, and structs composed of
// them. Types containing pointers, slices, maps, strings, interfaces, or
// channels must not be used; the stored bytes would be meaningless when
// read back.
//
// No address arithmetic lives here. Everything reduces to
// count*sizeof(T) bytes handed to Device.Write or Device.Read unchanged.

// WriteValue writes the raw bytes of v at addr.
func WriteValue[T any](d *Device, addr uint16, v T) error {
	return d.Write(addr, valueBytes(&v))
}

// ReadValue reads sizeof(T) bytes at addr and reconstructs a T from them.
func ReadValue[T any](d *Device, addr uint16) (T, error) {
	var v T
	err := d.Read(addr, valueBytes(&v))
	return v, err
}

// WriteSlice writes all elements of s at addr.
func WriteSlice[T any](d *Device, addr uint16, s []T) error {
	return d.Write(addr, sliceBytes(s))
}

// WriteSliceN writes the first count elements of s at addr. In checked
// mode a count exceeding len(s) fails before anything reaches the bus.
func WriteSliceN[T any](d *Device, addr uint16, s []T, count int) error {
	if !d.unchecked {
		if count < 0 || count > len(s) {
			debugLog(d.devAddr, "write: count "+itoa(count)+" exceeds slice length "+itoa(len(s)))
			return ErrCount
		}
	}
	return d.Write(addr, sliceBytes(s[:count]))
}

// ReadSlice fills every element of dst from addr.
func ReadSlice[T any](d *Device, addr uint16, dst []T) error {
	return d.Read(addr, sliceBytes(dst))
}

// ReadSliceN fills the first count elements of dst from addr. In checked
// mode a count exceeding len(dst) fails before anything reaches the bus.
func ReadSliceN[T any](d *Device, addr uint16, dst []T, count int) error {
	if !d.unchecked {
		if count < 0 || count > len(dst) {
			debugLog(d.devAddr, "read: count "+itoa(count)+" exceeds slice length "+itoa(len(dst)))
			return ErrCount
		}
	}
	return d.Read(addr, sliceBytes(dst[:count]))
}

// ReadSliceNew allocates a slice of count elements, fills it from addr,
// and returns it. On failure the slice is not returned.
func ReadSliceNew[T any](d *Device, addr uint16, count int) ([]T, error) {
	if !d.unchecked {
		if count < 0 {
			debugLog(d.devAddr, "read: negative count "+itoa(count))
			return nil, ErrCount
		}
	}
	s := make([]T, count)
	if err := d.Read(addr, sliceBytes(s)); err != nil {
		return nil, err
	}
	return s, nil
}

// valueBytes views the storage of *v as a byte slice.
func valueBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// sliceBytes views the backing array of s as a byte slice.
func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), uintptr(len(s))*unsafe.Sizeof(s[0]))
}
