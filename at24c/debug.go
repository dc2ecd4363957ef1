package at24c

// DebugWriter is a function type for writing debug messages.
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (set by platform code).
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active.
	// Disabled by default; enable with SetDebugEnabled(true).
	debugEnabled bool = false
)

// SetDebugWriter sets the platform-specific debug output function.
// This allows platforms to redirect driver diagnostics to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output.
// Validation and transport failures are reported through the writer when
// enabled; the return contract of the driver does not change either way.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// debugLog writes a message through the debug writer, prefixed with the
// device address so chips sharing a bus can be told apart.
func debugLog(devAddr uint8, msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln("[0x" + hex8(devAddr) + "] " + msg)
	}
}

const hexDigits = "0123456789abcdef"

// hex8 formats a byte as two hex digits without using fmt.
// fmt pulls in a large amount of code under TinyGo; the driver stays clear
// of it so debug logging is cheap on-target.
func hex8(v uint8) string {
	return string([]byte{hexDigits[v>>4], hexDigits[v&0x0F]})
}

// hex16 formats a 16-bit value as four hex digits.
func hex16(v uint16) string {
	return hex8(uint8(v>>8)) + hex8(uint8(v))
}

// itoa converts a non-negative integer to a string without fmt.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	digits := 0
	for temp := n; temp > 0; temp /= 10 {
		digits++
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}
