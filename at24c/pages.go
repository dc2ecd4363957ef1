package at24c

// Address/page arithmetic for the AT24C256 memory layout.
// These helpers are the single source of truth for page math: both the
// paged write splitter and the validation checks call into them, so the
// boundary rules live in exactly one place.

// PageOf returns the page index containing addr.
func PageOf(addr uint16) uint16 {
	return addr / PageSize
}

// PageSpan reports the first page, last page, and number of pages covered
// by a size-byte access starting at addr. size must be >= 1.
func PageSpan(addr uint16, size int) (start, end uint16, pages int) {
	start = PageOf(addr)
	end = uint16((uint32(addr) + uint32(size) - 1) / PageSize)
	pages = int(end-start) + 1
	return start, end, pages
}

// BytesToPageEnd returns how many bytes can be written starting at addr
// without crossing into the next page. Always in 1..PageSize.
func BytesToPageEnd(addr uint16) int {
	next := (uint32(PageOf(addr)) + 1) * PageSize
	return int(next - uint32(addr))
}

// InRange reports whether a size-byte access starting at addr stays inside
// the chip. Arithmetic is done in uint32 so addr+size cannot wrap.
func InRange(addr uint16, size int) bool {
	if size < 0 {
		return false
	}
	return uint32(addr)+uint32(size) <= MemorySize
}
