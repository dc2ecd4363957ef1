// eeprom-host is an interactive tool for inspecting and programming an
// AT24C256 attached to the host through a UART-to-I2C bridge adapter.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"

	"eeprom/at24c"
	"eeprom/host/bridge"
	"eeprom/host/serial"
	"eeprom/i2cbus"
)

var (
	device    = flag.String("device", "/dev/ttyUSB0", "Serial device path of the bridge adapter")
	baud      = flag.Int("baud", 9600, "Baud rate of the bridge adapter")
	chipAddr  = flag.Uint("addr", at24c.DefaultAddress, "7-bit I2C address of the EEPROM")
	unchecked = flag.Bool("unchecked", false, "Disable driver precondition checks")
	verbose   = flag.Bool("verbose", false, "Print driver debug output")
)

func main() {
	flag.Parse()

	if *verbose {
		at24c.SetDebugWriter(func(s string) { fmt.Println("  dbg:", s) })
		at24c.SetDebugEnabled(true)
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Opening bridge on %s...\n", *device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	bus := i2cbus.New(bridge.New(port))
	dev, err := at24c.New(bus, at24c.Config{
		Address:   uint8(*chipAddr),
		Unchecked: *unchecked,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()

	fmt.Printf("AT24C256 @ 0x%02X (%d bytes, %d-byte pages)\n",
		*chipAddr, at24c.MemorySize, at24c.PageSize)
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit", "q":
			return

		case "help", "?":
			printHelp()

		default:
			if err := runCommand(dev, args); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(dev *at24c.Device, args []string) error {
	switch args[0] {
	case "read":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: read <addr> [len]")
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		n := 1
		if len(args) == 3 {
			if n, err = parseLen(args[2]); err != nil {
				return err
			}
		}
		buf := make([]byte, n)
		if err := dev.Read(addr, buf); err != nil {
			return err
		}
		hexdump(addr, buf)
		return nil

	case "dump":
		if len(args) != 2 {
			return fmt.Errorf("usage: dump <page>")
		}
		page, err := strconv.ParseUint(args[1], 0, 16)
		if err != nil || page >= at24c.PageCount {
			return fmt.Errorf("page must be 0..%d", at24c.PageCount-1)
		}
		addr := uint16(page) * at24c.PageSize
		buf := make([]byte, at24c.PageSize)
		if err := dev.Read(addr, buf); err != nil {
			return err
		}
		hexdump(addr, buf)
		return nil

	case "write":
		if len(args) < 3 {
			return fmt.Errorf("usage: write <addr> <byte> [byte...]")
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		data := make([]byte, 0, len(args)-2)
		for _, a := range args[2:] {
			v, err := strconv.ParseUint(a, 0, 8)
			if err != nil {
				return fmt.Errorf("bad byte %q: %v", a, err)
			}
			data = append(data, byte(v))
		}
		if err := dev.Write(addr, data); err != nil {
			return err
		}
		fmt.Printf("Wrote %d bytes @ 0x%04X\n", len(data), addr)
		return nil

	case "writestr":
		if len(args) != 3 {
			return fmt.Errorf("usage: writestr <addr> \"text\"")
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		if err := dev.Write(addr, []byte(args[2])); err != nil {
			return err
		}
		fmt.Printf("Wrote %d bytes @ 0x%04X\n", len(args[2]), addr)
		return nil

	case "readstr":
		if len(args) != 3 {
			return fmt.Errorf("usage: readstr <addr> <len>")
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		n, err := parseLen(args[2])
		if err != nil {
			return err
		}
		buf := make([]byte, n)
		if err := dev.Read(addr, buf); err != nil {
			return err
		}
		fmt.Printf("%q\n", string(buf))
		return nil

	case "fill":
		if len(args) != 4 {
			return fmt.Errorf("usage: fill <addr> <len> <value>")
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		n, err := parseLen(args[2])
		if err != nil {
			return err
		}
		v, err := strconv.ParseUint(args[3], 0, 8)
		if err != nil {
			return fmt.Errorf("bad value %q: %v", args[3], err)
		}
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(v)
		}
		if err := dev.Write(addr, buf); err != nil {
			return err
		}
		fmt.Printf("Filled %d bytes @ 0x%04X with 0x%02X\n", n, addr, byte(v))
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", args[0])
	}
}

func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %v", s, err)
	}
	return uint16(v), nil
}

func parseLen(s string) (int, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("bad length %q", s)
	}
	return int(v), nil
}

func hexdump(addr uint16, buf []byte) {
	for off := 0; off < len(buf); off += 16 {
		end := off + 16
		if end > len(buf) {
			end = len(buf)
		}
		fmt.Printf("%04X: ", addr+uint16(off))
		for i := off; i < end; i++ {
			fmt.Printf("%02X ", buf[i])
		}
		fmt.Println()
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  read <addr> [len]        - Read bytes and hexdump them")
	fmt.Println("  dump <page>              - Hexdump one 64-byte page")
	fmt.Println("  write <addr> <byte...>   - Write bytes (splits across pages)")
	fmt.Println("  writestr <addr> \"text\"   - Write a string")
	fmt.Println("  readstr <addr> <len>     - Read bytes and print as a string")
	fmt.Println("  fill <addr> <len> <val>  - Fill a span with one value")
	fmt.Println("  help                     - Show this help message")
	fmt.Println("  quit/exit/q              - Exit the program")
	fmt.Println()
}
