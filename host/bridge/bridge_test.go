package bridge

import (
	"bytes"
	"errors"
	"testing"
)

func TestTxFrameWrite(t *testing.T) {
	frame, err := txFrame(0x50, []byte{0x01, 0x23, 0xAB}, 0)
	if err != nil {
		t.Fatalf("txFrame failed: %v", err)
	}
	expected := []byte{'S', 0xA0, 3, 0x01, 0x23, 0xAB, 'P'}
	if !bytes.Equal(frame, expected) {
		t.Errorf("write frame % X, expected % X", frame, expected)
	}
}

func TestTxFrameWriteThenRead(t *testing.T) {
	frame, err := txFrame(0x50, []byte{0x01, 0x23}, 4)
	if err != nil {
		t.Fatalf("txFrame failed: %v", err)
	}
	// Address word write, repeated start, read of 4 bytes.
	expected := []byte{'S', 0xA0, 2, 0x01, 0x23, 'S', 0xA1, 4, 'P'}
	if !bytes.Equal(frame, expected) {
		t.Errorf("combined frame % X, expected % X", frame, expected)
	}
}

func TestTxFrameReadOnly(t *testing.T) {
	frame, err := txFrame(0x50, nil, 2)
	if err != nil {
		t.Fatalf("txFrame failed: %v", err)
	}
	expected := []byte{'S', 0xA1, 2, 'P'}
	if !bytes.Equal(frame, expected) {
		t.Errorf("read frame % X, expected % X", frame, expected)
	}
}

func TestTxFrameTooLong(t *testing.T) {
	if _, err := txFrame(0x50, make([]byte, 256), 0); !errors.Is(err, ErrTooLong) {
		t.Errorf("expected ErrTooLong for 256-byte write, got %v", err)
	}
	if _, err := txFrame(0x50, nil, 256); !errors.Is(err, ErrTooLong) {
		t.Errorf("expected ErrTooLong for 256-byte read, got %v", err)
	}
}

func TestStatusError(t *testing.T) {
	testCases := []struct {
		code     byte
		expected error
	}{
		{0xF0, nil},
		{0xF1, ErrNakAddr},
		{0xF2, ErrNakData},
		{0xF8, ErrTimeout},
	}

	for _, tc := range testCases {
		if err := statusError(tc.code); !errors.Is(err, tc.expected) {
			t.Errorf("statusError(0x%02X) = %v, expected %v", tc.code, err, tc.expected)
		}
	}

	if err := statusError(0x42); err == nil {
		t.Error("unknown status code should be an error")
	}
}

// scriptPort feeds canned adapter responses and records everything the
// bridge writes.
type scriptPort struct {
	written  bytes.Buffer
	response bytes.Buffer
}

func (p *scriptPort) Read(b []byte) (int, error)  { return p.response.Read(b) }
func (p *scriptPort) Write(b []byte) (int, error) { return p.written.Write(b) }
func (p *scriptPort) Close() error                { return nil }
func (p *scriptPort) Flush() error                { return nil }

func TestBridgeTxReadsDataAndStatus(t *testing.T) {
	port := &scriptPort{}
	port.response.Write([]byte{0xDE, 0xAD}) // read payload
	port.response.WriteByte(0xF0)           // status: OK

	b := New(port)

	r := make([]byte, 2)
	if err := b.Tx(0x50, []byte{0x00, 0x10}, r); err != nil {
		t.Fatalf("Tx failed: %v", err)
	}
	if r[0] != 0xDE || r[1] != 0xAD {
		t.Errorf("read % X, expected DE AD", r)
	}

	expected := []byte{
		'S', 0xA0, 2, 0x00, 0x10, 'S', 0xA1, 2, 'P', // transaction
		'R', 0x0A, 'P', // status poll
	}
	if !bytes.Equal(port.written.Bytes(), expected) {
		t.Errorf("wrote % X, expected % X", port.written.Bytes(), expected)
	}
}

func TestBridgeTxReportsNak(t *testing.T) {
	port := &scriptPort{}
	port.response.WriteByte(0xF1) // status: address NAK

	b := New(port)
	if err := b.Tx(0x50, []byte{0x00, 0x10, 0xFF}, nil); !errors.Is(err, ErrNakAddr) {
		t.Errorf("expected ErrNakAddr, got %v", err)
	}
}
