package at24c

import "testing"

func TestPageOf(t *testing.T) {
	testCases := []struct {
		addr     uint16
		expected uint16
	}{
		{0x0000, 0},
		{0x003F, 0},
		{0x0040, 1},
		{0x00B0, 2},
		{0x017D, 5},
		{0x7FC0, 511},
		{0x7FFF, 511},
	}

	for _, tc := range testCases {
		if got := PageOf(tc.addr); got != tc.expected {
			t.Errorf("PageOf(0x%04X) = %d, expected %d", tc.addr, got, tc.expected)
		}
	}
}

func TestPageSpan(t *testing.T) {
	testCases := []struct {
		addr       uint16
		size       int
		start, end uint16
		pages      int
	}{
		{0x0000, 1, 0, 0, 1},
		{0x0000, 64, 0, 0, 1},
		{0x0000, 65, 0, 1, 2},
		{0x003F, 2, 0, 1, 2},
		{0x00B0, 100, 2, 4, 3},
		{0x017D, 5, 5, 6, 2},
		{0x7FC0, 64, 511, 511, 1},
	}

	for _, tc := range testCases {
		start, end, pages := PageSpan(tc.addr, tc.size)
		if start != tc.start || end != tc.end || pages != tc.pages {
			t.Errorf("PageSpan(0x%04X, %d) = (%d, %d, %d), expected (%d, %d, %d)",
				tc.addr, tc.size, start, end, pages, tc.start, tc.end, tc.pages)
		}
	}
}

func TestBytesToPageEnd(t *testing.T) {
	testCases := []struct {
		addr     uint16
		expected int
	}{
		{0x0000, 64},
		{0x0001, 63},
		{0x003F, 1},
		{0x0040, 64},
		{0x00B0, 16},
		{0x7FFF, 1},
	}

	for _, tc := range testCases {
		if got := BytesToPageEnd(tc.addr); got != tc.expected {
			t.Errorf("BytesToPageEnd(0x%04X) = %d, expected %d", tc.addr, got, tc.expected)
		}
	}
}

func TestInRange(t *testing.T) {
	testCases := []struct {
		addr     uint16
		size     int
		expected bool
	}{
		{0x0000, 0, true},
		{0x0000, MemorySize, true},
		{0x0000, MemorySize + 1, false},
		{0x7FFF, 1, true},
		{0x7FFF, 2, false},
		{0x8000, 1, false},
		{0xFFFF, 1, false}, // wide arithmetic, no uint16 wrap
		{0x0000, -1, false},
	}

	for _, tc := range testCases {
		if got := InRange(tc.addr, tc.size); got != tc.expected {
			t.Errorf("InRange(0x%04X, %d) = %v, expected %v", tc.addr, tc.size, got, tc.expected)
		}
	}
}
