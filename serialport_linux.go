//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

import (
	"os"
	"regexp"
	"sort"
	"time"

	"github.com/creack/goselect"
	"github.com/fvbommel/sortorder"
	"golang.org/x/sys/unix"
)

const devFolder = "/dev"
const devFilter = "^(ttyS|ttyUSB|ttyACM|ttyAMA|rfcomm|ttyO)[0-9]{1,3}$"

type unixPort struct {
	handle int
	name   string

	// Timeout intents, applied as select deadlines. Per Port value:
	// clones snapshot them and then diverge freely.
	readTimeout  time.Duration
	writeTimeout time.Duration
}

var _ Port = (*unixPort)(nil)

func mapOsError(err error) *PortError {
	switch err {
	case unix.ENOENT, unix.ENXIO, unix.ENODEV, unix.EACCES, unix.EBUSY:
		return &PortError{code: NoDevice, causedBy: err}
	}
	return &PortError{code: OsError, causedBy: err}
}

func nativeOpen(name string, mode *Mode) (*unixPort, error) {
	handle, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		if err == unix.EINVAL {
			return nil, &PortError{code: InvalidInput, causedBy: err}
		}
		return nil, mapOsError(err)
	}
	port := &unixPort{
		handle: handle,
		name:   name,
	}
	// The descriptor stays non-blocking; reads and writes are paced by
	// select against the configured timeouts.
	unix.IoctlSetInt(handle, unix.TIOCEXCL, 0)

	if err := port.SetMode(mode); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

func nativeFromRawHandle(handle uintptr) *unixPort {
	return &unixPort{handle: int(handle)}
}

func nativeGetPortsList() ([]string, error) {
	files, err := os.ReadDir(devFolder)
	if err != nil {
		return nil, &PortError{code: ErrorEnumeratingPorts, causedBy: err}
	}

	filter := regexp.MustCompile(devFilter)
	ports := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !filter.MatchString(f.Name()) {
			continue
		}
		ports = append(ports, devFolder+"/"+f.Name())
	}
	sort.Sort(sortorder.Natural(ports))
	return ports, nil
}

func (port *unixPort) Name() string {
	return port.name
}

func (port *unixPort) Close() error {
	if port.handle == -1 {
		return nil
	}
	// Cleanup is best effort, close errors are not surfaced.
	unix.IoctlSetInt(port.handle, unix.TIOCNXCL, 0)
	unix.Close(port.handle)
	port.handle = -1
	return nil
}

func (port *unixPort) Clone() (Port, error) {
	handle, err := unix.Dup(port.handle)
	if err != nil {
		return nil, mapOsError(err)
	}
	return &unixPort{
		handle:       handle,
		name:         port.name,
		readTimeout:  port.readTimeout,
		writeTimeout: port.writeTimeout,
	}, nil
}

func (port *unixPort) RawHandle() uintptr {
	return uintptr(port.handle)
}

func (port *unixPort) ReleaseRawHandle() uintptr {
	handle := port.handle
	port.handle = -1
	return uintptr(handle)
}

// wait blocks until the descriptor is ready for the requested direction or
// the timeout expires. A NoTimeout intent degenerates to a poll.
func (port *unixPort) wait(read bool, timeout time.Duration) error {
	fds := &goselect.FDSet{}
	fds.Zero()
	fds.Set(uintptr(port.handle))
	var err error
	if read {
		err = goselect.Select(port.handle+1, fds, nil, nil, timeout)
	} else {
		err = goselect.Select(port.handle+1, nil, fds, nil, timeout)
	}
	if err != nil {
		return mapOsError(err)
	}
	if !fds.IsSet(uintptr(port.handle)) {
		return &PortError{code: Timeout}
	}
	return nil
}

func (port *unixPort) Read(p []byte) (int, error) {
	if err := port.wait(true, port.readTimeout); err != nil {
		return 0, err
	}
	n, err := unix.Read(port.handle, p)
	if err != nil {
		if err == unix.EAGAIN {
			// The queue was purged between select and read.
			return 0, &PortError{code: Timeout}
		}
		return 0, mapOsError(err)
	}
	if n == 0 {
		return 0, &PortError{code: Timeout}
	}
	return n, nil
}

func (port *unixPort) Write(p []byte) (int, error) {
	if err := port.wait(false, port.writeTimeout); err != nil {
		return 0, err
	}
	n, err := unix.Write(port.handle, p)
	if err != nil {
		return 0, mapOsError(err)
	}
	return n, nil
}

func (port *unixPort) Drain() error {
	if err := unix.IoctlSetInt(port.handle, unix.TCSBRK, 1); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *unixPort) SetMode(mode *Mode) error {
	settings, err := getTermios(port.handle)
	if err != nil {
		return err
	}
	setTermiosRawMode(settings)
	baudRate := mode.BaudRate
	if baudRate == 0 {
		baudRate = 9600
	}
	if err := setTermiosBaudRate(settings, baudRate); err != nil {
		return err
	}
	dataBits := mode.DataBits
	if dataBits == 0 {
		dataBits = DataBits8
	}
	if err := setTermiosDataBits(settings, dataBits); err != nil {
		return err
	}
	if err := setTermiosParity(settings, mode.Parity); err != nil {
		return err
	}
	if err := setTermiosStopBits(settings, mode.StopBits); err != nil {
		return err
	}
	if err := setTermiosFlowControl(settings, mode.FlowControl); err != nil {
		return err
	}
	if err := setTermios(port.handle, settings); err != nil {
		return err
	}
	return port.setTimeouts(mode.ReadTimeout, mode.WriteTimeout)
}

func (port *unixPort) BaudRate() (uint32, error) {
	settings, err := getTermios(port.handle)
	if err != nil {
		return 0, err
	}
	return termiosBaudRate(settings)
}

func (port *unixPort) SetBaudRate(rate uint32) error {
	settings, err := getTermios(port.handle)
	if err != nil {
		return err
	}
	if err := setTermiosBaudRate(settings, rate); err != nil {
		return err
	}
	return setTermios(port.handle, settings)
}

func (port *unixPort) DataBits() (DataBits, error) {
	settings, err := getTermios(port.handle)
	if err != nil {
		return 0, err
	}
	return termiosDataBits(settings)
}

func (port *unixPort) SetDataBits(bits DataBits) error {
	settings, err := getTermios(port.handle)
	if err != nil {
		return err
	}
	if err := setTermiosDataBits(settings, bits); err != nil {
		return err
	}
	return setTermios(port.handle, settings)
}

func (port *unixPort) Parity() (Parity, error) {
	settings, err := getTermios(port.handle)
	if err != nil {
		return 0, err
	}
	return termiosParity(settings)
}

func (port *unixPort) SetParity(parity Parity) error {
	settings, err := getTermios(port.handle)
	if err != nil {
		return err
	}
	if err := setTermiosParity(settings, parity); err != nil {
		return err
	}
	return setTermios(port.handle, settings)
}

func (port *unixPort) StopBits() (StopBits, error) {
	settings, err := getTermios(port.handle)
	if err != nil {
		return 0, err
	}
	return termiosStopBits(settings)
}

func (port *unixPort) SetStopBits(bits StopBits) error {
	settings, err := getTermios(port.handle)
	if err != nil {
		return err
	}
	if err := setTermiosStopBits(settings, bits); err != nil {
		return err
	}
	return setTermios(port.handle, settings)
}

func (port *unixPort) FlowControl() (FlowControl, error) {
	settings, err := getTermios(port.handle)
	if err != nil {
		return 0, err
	}
	return termiosFlowControl(settings), nil
}

func (port *unixPort) SetFlowControl(flow FlowControl) error {
	settings, err := getTermios(port.handle)
	if err != nil {
		return err
	}
	if err := setTermiosFlowControl(settings, flow); err != nil {
		return err
	}
	return setTermios(port.handle, settings)
}

func (port *unixPort) ReadTimeout() time.Duration {
	return port.readTimeout
}

func (port *unixPort) SetReadTimeout(t time.Duration) error {
	return port.setTimeouts(t, port.writeTimeout)
}

func (port *unixPort) WriteTimeout() time.Duration {
	return port.writeTimeout
}

func (port *unixPort) SetWriteTimeout(t time.Duration) error {
	return port.setTimeouts(port.readTimeout, t)
}

func (port *unixPort) setTimeouts(readTimeout, writeTimeout time.Duration) error {
	if readTimeout < 0 || writeTimeout < 0 {
		return &PortError{code: InvalidInput}
	}
	port.readTimeout = readTimeout
	port.writeTimeout = writeTimeout
	return nil
}

func (port *unixPort) modemBits() (int, error) {
	bits, err := unix.IoctlGetInt(port.handle, unix.TIOCMGET)
	if err != nil {
		return 0, mapOsError(err)
	}
	return bits, nil
}

func (port *unixPort) setModemBit(bit int, level bool) error {
	request := uint(unix.TIOCMBIC)
	if level {
		request = uint(unix.TIOCMBIS)
	}
	if err := unix.IoctlSetPointerInt(port.handle, request, bit); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *unixPort) SetRTS(level bool) error {
	return port.setModemBit(unix.TIOCM_RTS, level)
}

func (port *unixPort) SetDTR(level bool) error {
	return port.setModemBit(unix.TIOCM_DTR, level)
}

func (port *unixPort) CTS() (bool, error) {
	bits, err := port.modemBits()
	return bits&unix.TIOCM_CTS != 0, err
}

func (port *unixPort) DSR() (bool, error) {
	bits, err := port.modemBits()
	return bits&unix.TIOCM_DSR != 0, err
}

func (port *unixPort) RingIndicator() (bool, error) {
	bits, err := port.modemBits()
	return bits&unix.TIOCM_RI != 0, err
}

func (port *unixPort) CarrierDetect() (bool, error) {
	bits, err := port.modemBits()
	return bits&unix.TIOCM_CAR != 0, err
}

func (port *unixPort) SetBreak() error {
	if err := unix.IoctlSetInt(port.handle, unix.TIOCSBRK, 0); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *unixPort) ClearBreak() error {
	if err := unix.IoctlSetInt(port.handle, unix.TIOCCBRK, 0); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *unixPort) BytesToRead() (uint32, error) {
	n, err := unix.IoctlGetInt(port.handle, unix.TIOCINQ)
	if err != nil {
		return 0, mapOsError(err)
	}
	return uint32(n), nil
}

func (port *unixPort) BytesToWrite() (uint32, error) {
	n, err := unix.IoctlGetInt(port.handle, unix.TIOCOUTQ)
	if err != nil {
		return 0, mapOsError(err)
	}
	return uint32(n), nil
}

func (port *unixPort) Clear(buffers ClearBuffer) error {
	var selector int
	switch buffers {
	case ClearInput:
		selector = unix.TCIFLUSH
	case ClearOutput:
		selector = unix.TCOFLUSH
	case ClearAll:
		selector = unix.TCIOFLUSH
	default:
		return &PortError{code: InvalidInput}
	}
	if err := unix.IoctlSetInt(port.handle, unix.TCFLSH, selector); err != nil {
		return mapOsError(err)
	}
	return nil
}
