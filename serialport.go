//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

import (
	"time"
)

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go syscall_windows.go

// Port is the interface for an open serial port.
//
// A Port owns exactly one native descriptor, which is released by Close.
// No internal locking is performed: concurrent calls against the same Port
// must be serialized by the caller. Use Clone to obtain a second,
// independently owned descriptor for the same device when one goroutine
// should read while another writes.
type Port interface {
	// SetMode sets all line parameters of the serial port in a single
	// atomic update of the native control block.
	SetMode(mode *Mode) error

	// BaudRate reads the current baud rate back from the device.
	BaudRate() (uint32, error)

	// SetBaudRate sets the port bitrate. The value is handed to the device
	// as-is; the native layer decides which rates it supports.
	SetBaudRate(rate uint32) error

	// DataBits reads the current character size back from the device.
	DataBits() (DataBits, error)

	// SetDataBits sets the character size (5, 6, 7 or 8 bits).
	SetDataBits(bits DataBits) error

	// Parity reads the current parity mode back from the device.
	Parity() (Parity, error)

	// SetParity sets the parity mode.
	SetParity(parity Parity) error

	// StopBits reads the current stop bits setting back from the device.
	StopBits() (StopBits, error)

	// SetStopBits sets the number of stop bits (1 or 2).
	SetStopBits(bits StopBits) error

	// FlowControl reads the current flow control mode back from the device.
	// If the native handshake flags were put into a mixed state by an
	// external tool, hardware flow control wins over software.
	FlowControl() (FlowControl, error)

	// SetFlowControl sets the flow control mode, clearing the native flags
	// of the modes not selected.
	SetFlowControl(flow FlowControl) error

	// ReadTimeout returns the cached read timeout of this Port value.
	// The cache is per Port: after Clone, the two values keep separate
	// timeout caches and can diverge once either side reconfigures.
	ReadTimeout() time.Duration

	// SetReadTimeout sets the read timeout. NoTimeout makes Read return
	// promptly when no bytes are queued; a positive value makes Read wait
	// up to that long (rounded up to at least one millisecond) for the
	// first byte. Negative values are rejected.
	SetReadTimeout(t time.Duration) error

	// WriteTimeout returns the cached write timeout of this Port value.
	WriteTimeout() time.Duration

	// SetWriteTimeout sets the write timeout, with the same value rules as
	// SetReadTimeout.
	SetWriteTimeout(t time.Duration) error

	// Read stores data received from the serial port into p and returns
	// the number of bytes read, which may be less than len(p). Read blocks
	// until at least one byte is available or the read timeout expires, in
	// which case a *PortError with code Timeout is returned. A successful
	// zero-byte transfer is never reported.
	Read(p []byte) (n int, err error)

	// Write sends the content of p to the serial port and returns the
	// number of bytes accepted by the native layer. A short write is not
	// an error.
	Write(p []byte) (n int, err error)

	// Drain blocks until all bytes previously accepted by Write have been
	// physically transmitted, not merely queued.
	Drain() error

	// BytesToRead returns the number of bytes queued in the receive
	// buffer. As a side effect of the native status primitive, any latched
	// error flags on the device are cleared by this call.
	BytesToRead() (uint32, error)

	// BytesToWrite returns the number of bytes queued in the transmit
	// buffer. The same error-clearing side effect as BytesToRead applies.
	BytesToWrite() (uint32, error)

	// Clear aborts in-flight I/O on the selected direction(s) and discards
	// the queued bytes. The direction not selected is unaffected.
	Clear(buffers ClearBuffer) error

	// SetRTS sets the RequestToSend modem line.
	SetRTS(level bool) error

	// SetDTR sets the DataTerminalReady modem line.
	SetDTR(level bool) error

	// CTS samples the ClearToSend modem line. Each call is an independent
	// on-demand sample; nothing is cached or debounced.
	CTS() (bool, error)

	// DSR samples the DataSetReady modem line.
	DSR() (bool, error)

	// RingIndicator samples the RingIndicator modem line.
	RingIndicator() (bool, error)

	// CarrierDetect samples the CarrierDetect modem line.
	CarrierDetect() (bool, error)

	// SetBreak drives the transmit line into the break condition
	// (continuous logic zero) until ClearBreak is called.
	SetBreak() error

	// ClearBreak restores normal transmission after SetBreak.
	ClearBreak() error

	// Name returns the port name passed to Open, or the empty string for
	// ports created by FromRawHandle.
	Name() string

	// Clone duplicates the native descriptor and returns a new Port that
	// refers to the same device. The returned Port owns its descriptor and
	// can be closed independently of the original. Its timeout cache is a
	// snapshot of this Port's cache at the instant of cloning, not a link:
	// reconfiguring timeouts on either Port afterwards leaves the other's
	// cache untouched. Line settings (baud, parity, ...) are never cached,
	// so both Ports always observe those consistently.
	Clone() (Port, error)

	// RawHandle returns the native descriptor, e.g. for registration with
	// an external poller. Ownership stays with the Port.
	RawHandle() uintptr

	// ReleaseRawHandle relinquishes ownership of the native descriptor to
	// the caller without closing it. The Port must not be used afterwards.
	ReleaseRawHandle() uintptr

	// Close releases the native descriptor. Errors from the native close
	// call are not surfaced; cleanup is best effort.
	Close() error
}

// Open opens the named serial port using the given mode. The whole mode,
// timeouts included, is applied before Open returns: a caller never
// observes a half-configured port.
func Open(name string, mode *Mode) (Port, error) {
	if mode == nil {
		mode = &Mode{}
	}
	return nativeOpen(name, mode)
}

// FromRawHandle adopts an externally obtained native descriptor and wraps
// it into a Port. The caller guarantees exclusive ownership of a live
// descriptor referring to a serial device; nothing is validated here.
//
// The returned Port reports NoTimeout for both directions regardless of the
// timeouts actually configured on the descriptor, because the native state
// cannot be mapped back to a timeout intent. Callers that rely on timeout
// behavior must reapply the desired values with SetReadTimeout and
// SetWriteTimeout.
func FromRawHandle(handle uintptr) Port {
	return nativeFromRawHandle(handle)
}

// GetPortsList retrieves the list of available serial ports in natural
// sort order.
func GetPortsList() ([]string, error) {
	return nativeGetPortsList()
}

// NoTimeout requests that Read and Write do not wait for progress beyond
// the native minimum quantum.
const NoTimeout time.Duration = 0

// Mode describes a serial port configuration.
type Mode struct {
	BaudRate     uint32        // port bitrate (default 9600)
	DataBits     DataBits      // size of the character (default 8)
	Parity       Parity        // parity (default none)
	StopBits     StopBits      // stop bits (default 1)
	FlowControl  FlowControl   // flow control (default none)
	ReadTimeout  time.Duration // read timeout (default NoTimeout)
	WriteTimeout time.Duration // write timeout (default NoTimeout)
}

// DataBits describes the number of data bits in a character.
type DataBits int

const (
	// DataBits5 sets 5 data bits per character
	DataBits5 DataBits = 5
	// DataBits6 sets 6 data bits per character
	DataBits6 DataBits = 6
	// DataBits7 sets 7 data bits per character
	DataBits7 DataBits = 7
	// DataBits8 sets 8 data bits per character (default)
	DataBits8 DataBits = 8
)

// Parity describes a serial port parity setting.
type Parity int

const (
	// NoParity disables parity control (default)
	NoParity Parity = iota
	// OddParity enables odd-parity check
	OddParity
	// EvenParity enables even-parity check
	EvenParity
)

// StopBits describes a serial port stop bits setting.
type StopBits int

const (
	// OneStopBit sets 1 stop bit (default)
	OneStopBit StopBits = iota
	// TwoStopBits sets 2 stop bits
	TwoStopBits
)

// FlowControl describes a serial port flow control setting.
type FlowControl int

const (
	// NoFlowControl disables flow control (default)
	NoFlowControl FlowControl = iota
	// SoftwareFlowControl enables XON/XOFF in-band flow control
	SoftwareFlowControl
	// HardwareFlowControl enables RTS/CTS hardware flow control
	HardwareFlowControl
)

// ClearBuffer selects which buffers Clear purges.
type ClearBuffer int

const (
	// ClearInput purges the receive buffer
	ClearInput ClearBuffer = iota
	// ClearOutput purges the transmit buffer
	ClearOutput
	// ClearAll purges both buffers
	ClearAll
)

// ModeFromString fills the line settings of mode from a compact
// "databits parity stopbits" description like "8N1" or "7E2".
// The baud rate, flow control and timeouts are left untouched.
func ModeFromString(s string, mode *Mode) error {
	if len(s) != 3 {
		return &PortError{code: InvalidInput}
	}
	switch s[0] {
	case '5':
		mode.DataBits = DataBits5
	case '6':
		mode.DataBits = DataBits6
	case '7':
		mode.DataBits = DataBits7
	case '8':
		mode.DataBits = DataBits8
	default:
		return &PortError{code: InvalidInput}
	}
	switch s[1] {
	case 'N', 'n':
		mode.Parity = NoParity
	case 'O', 'o':
		mode.Parity = OddParity
	case 'E', 'e':
		mode.Parity = EvenParity
	default:
		return &PortError{code: InvalidInput}
	}
	switch s[2] {
	case '1':
		mode.StopBits = OneStopBit
	case '2':
		mode.StopBits = TwoStopBits
	default:
		return &PortError{code: InvalidInput}
	}
	return nil
}
