//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// MSDN article on Serial Communications:
// http://msdn.microsoft.com/en-us/library/ff802693.aspx

package serialport

import (
	"math"
	"sort"
	"syscall"
	"time"

	"github.com/fvbommel/sortorder"
)

type windowsPort struct {
	handle syscall.Handle
	name   string

	// Cached timeout intents. The COMMTIMEOUTS on the handle cannot be
	// mapped back to an intent, so these are the only record of it. They
	// are per Port value: clones snapshot them and then diverge freely.
	readTimeout  time.Duration
	writeTimeout time.Duration
}

var _ Port = (*windowsPort)(nil)

func mapOsError(err error) *PortError {
	switch err {
	case syscall.ERROR_FILE_NOT_FOUND, syscall.ERROR_PATH_NOT_FOUND, syscall.ERROR_ACCESS_DENIED:
		return &PortError{code: NoDevice, causedBy: err}
	}
	return &PortError{code: OsError, causedBy: err}
}

func nativeOpen(name string, mode *Mode) (*windowsPort, error) {
	// The \\.\ prefix routes the name through the NT namespace, which is
	// also what makes ports beyond COM9 reachable.
	path, err := syscall.UTF16PtrFromString("\\\\.\\" + name)
	if err != nil {
		return nil, &PortError{code: InvalidInput, causedBy: err}
	}
	handle, err := syscall.CreateFile(
		path,
		syscall.GENERIC_READ|syscall.GENERIC_WRITE,
		0, nil,
		syscall.OPEN_EXISTING,
		syscall.FILE_ATTRIBUTE_NORMAL,
		0)
	if err != nil {
		return nil, mapOsError(err)
	}
	port := &windowsPort{
		handle: handle,
		name:   name,
	}
	if err := port.SetMode(mode); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

func nativeFromRawHandle(handle uintptr) *windowsPort {
	return &windowsPort{handle: syscall.Handle(handle)}
}

func nativeGetPortsList() ([]string, error) {
	subKey, err := syscall.UTF16PtrFromString("HARDWARE\\DEVICEMAP\\SERIALCOMM\\")
	if err != nil {
		return nil, &PortError{code: ErrorEnumeratingPorts}
	}

	var h syscall.Handle
	if syscall.RegOpenKeyEx(syscall.HKEY_LOCAL_MACHINE, subKey, 0, syscall.KEY_READ, &h) != nil {
		return nil, &PortError{code: ErrorEnumeratingPorts}
	}
	defer syscall.RegCloseKey(h)

	var valuesCount uint32
	if syscall.RegQueryInfoKey(h, nil, nil, nil, nil, nil, nil, &valuesCount, nil, nil, nil, nil) != nil {
		return nil, &PortError{code: ErrorEnumeratingPorts}
	}

	list := make([]string, valuesCount)
	for i := range list {
		var data [1024]uint16
		dataSize := uint32(len(data))
		var name [1024]uint16
		nameSize := uint32(len(name))
		if regEnumValue(h, uint32(i), &name[0], &nameSize, nil, nil, &data[0], &dataSize) != nil {
			return nil, &PortError{code: ErrorEnumeratingPorts}
		}
		list[i] = syscall.UTF16ToString(data[:])
	}
	sort.Sort(sortorder.Natural(list))
	return list, nil
}

func (port *windowsPort) Name() string {
	return port.name
}

func (port *windowsPort) Close() error {
	if port.handle == syscall.InvalidHandle {
		return nil
	}
	// Nothing can be done about a failing CloseHandle at this point.
	syscall.CloseHandle(port.handle)
	port.handle = syscall.InvalidHandle
	return nil
}

func (port *windowsPort) Clone() (Port, error) {
	process, err := syscall.GetCurrentProcess()
	if err != nil {
		return nil, mapOsError(err)
	}
	var duplicated syscall.Handle
	err = syscall.DuplicateHandle(
		process, port.handle,
		process, &duplicated,
		0, true, syscall.DUPLICATE_SAME_ACCESS)
	if err != nil {
		return nil, mapOsError(err)
	}
	return &windowsPort{
		handle:       duplicated,
		name:         port.name,
		readTimeout:  port.readTimeout,
		writeTimeout: port.writeTimeout,
	}, nil
}

func (port *windowsPort) RawHandle() uintptr {
	return uintptr(port.handle)
}

func (port *windowsPort) ReleaseRawHandle() uintptr {
	handle := port.handle
	port.handle = syscall.InvalidHandle
	return uintptr(handle)
}

func (port *windowsPort) Read(p []byte) (int, error) {
	var readed uint32
	if err := syscall.ReadFile(port.handle, p, &readed, nil); err != nil {
		return int(readed), mapOsError(err)
	}
	if readed == 0 {
		// ReadFile reports a successful zero-byte transfer when the
		// timeout elapsed before the first byte arrived.
		return 0, &PortError{code: Timeout}
	}
	return int(readed), nil
}

func (port *windowsPort) Write(p []byte) (int, error) {
	var writed uint32
	if err := syscall.WriteFile(port.handle, p, &writed, nil); err != nil {
		return int(writed), mapOsError(err)
	}
	return int(writed), nil
}

func (port *windowsPort) Drain() error {
	if err := syscall.FlushFileBuffers(port.handle); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *windowsPort) SetMode(mode *Mode) error {
	params, err := getDCB(port.handle)
	if err != nil {
		return err
	}
	params.initDefaults()
	baudRate := mode.BaudRate
	if baudRate == 0 {
		baudRate = 9600
	}
	params.setBaudRate(baudRate)
	dataBits := mode.DataBits
	if dataBits == 0 {
		dataBits = DataBits8
	}
	if err := params.setDataBits(dataBits); err != nil {
		return err
	}
	if err := params.setParity(mode.Parity); err != nil {
		return err
	}
	if err := params.setStopBits(mode.StopBits); err != nil {
		return err
	}
	if err := params.setFlowControl(mode.FlowControl); err != nil {
		return err
	}
	if err := setDCB(port.handle, params); err != nil {
		return err
	}
	return port.setTimeouts(mode.ReadTimeout, mode.WriteTimeout)
}

func (port *windowsPort) BaudRate() (uint32, error) {
	params, err := getDCB(port.handle)
	if err != nil {
		return 0, err
	}
	return params.baudRate(), nil
}

func (port *windowsPort) SetBaudRate(rate uint32) error {
	params, err := getDCB(port.handle)
	if err != nil {
		return err
	}
	params.setBaudRate(rate)
	return setDCB(port.handle, params)
}

func (port *windowsPort) DataBits() (DataBits, error) {
	params, err := getDCB(port.handle)
	if err != nil {
		return 0, err
	}
	return params.dataBits()
}

func (port *windowsPort) SetDataBits(bits DataBits) error {
	params, err := getDCB(port.handle)
	if err != nil {
		return err
	}
	if err := params.setDataBits(bits); err != nil {
		return err
	}
	return setDCB(port.handle, params)
}

func (port *windowsPort) Parity() (Parity, error) {
	params, err := getDCB(port.handle)
	if err != nil {
		return 0, err
	}
	return params.parity()
}

func (port *windowsPort) SetParity(parity Parity) error {
	params, err := getDCB(port.handle)
	if err != nil {
		return err
	}
	if err := params.setParity(parity); err != nil {
		return err
	}
	return setDCB(port.handle, params)
}

func (port *windowsPort) StopBits() (StopBits, error) {
	params, err := getDCB(port.handle)
	if err != nil {
		return 0, err
	}
	return params.stopBits()
}

func (port *windowsPort) SetStopBits(bits StopBits) error {
	params, err := getDCB(port.handle)
	if err != nil {
		return err
	}
	if err := params.setStopBits(bits); err != nil {
		return err
	}
	return setDCB(port.handle, params)
}

func (port *windowsPort) FlowControl() (FlowControl, error) {
	params, err := getDCB(port.handle)
	if err != nil {
		return 0, err
	}
	return params.flowControl(), nil
}

func (port *windowsPort) SetFlowControl(flow FlowControl) error {
	params, err := getDCB(port.handle)
	if err != nil {
		return err
	}
	if err := params.setFlowControl(flow); err != nil {
		return err
	}
	return setDCB(port.handle, params)
}

func (port *windowsPort) ReadTimeout() time.Duration {
	return port.readTimeout
}

func (port *windowsPort) SetReadTimeout(t time.Duration) error {
	return port.setTimeouts(t, port.writeTimeout)
}

func (port *windowsPort) WriteTimeout() time.Duration {
	return port.writeTimeout
}

func (port *windowsPort) SetWriteTimeout(t time.Duration) error {
	return port.setTimeouts(port.readTimeout, t)
}

// totalTimeoutConstant converts a timeout intent to a COMMTIMEOUTS
// total-timeout field: 0 for NoTimeout, otherwise the timeout in
// milliseconds clamped to 1..MAXDWORD.
func totalTimeoutConstant(t time.Duration) uint32 {
	if t == NoTimeout {
		return 0
	}
	ms := t.Milliseconds()
	if ms < 1 {
		return 1
	}
	if ms > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ms)
}

func (port *windowsPort) setTimeouts(readTimeout, writeTimeout time.Duration) error {
	if readTimeout < 0 || writeTimeout < 0 {
		return &PortError{code: InvalidInput}
	}
	// The one-millisecond interval timeout makes ReadFile return as soon
	// as a quiet gap follows at least one received byte; the total timeout
	// constant bounds the wait for that first byte. A constant of zero
	// makes ReadFile return promptly when the input queue is empty.
	timeouts := &commTimeouts{
		ReadIntervalTimeout:         1,
		ReadTotalTimeoutMultiplier:  0,
		ReadTotalTimeoutConstant:    totalTimeoutConstant(readTimeout),
		WriteTotalTimeoutMultiplier: 0,
		WriteTotalTimeoutConstant:   totalTimeoutConstant(writeTimeout),
	}
	if err := setCommTimeouts(port.handle, timeouts); err != nil {
		return mapOsError(err)
	}
	// The cache records the requested intent, not a value read back from
	// the device, and only after the native call succeeded.
	port.readTimeout = readTimeout
	port.writeTimeout = writeTimeout
	return nil
}

func (port *windowsPort) escape(function uint32) error {
	if err := escapeCommFunction(port.handle, function); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *windowsPort) SetRTS(level bool) error {
	if level {
		return port.escape(commFunctionSetRTS)
	}
	return port.escape(commFunctionClrRTS)
}

func (port *windowsPort) SetDTR(level bool) error {
	if level {
		return port.escape(commFunctionSetDTR)
	}
	return port.escape(commFunctionClrDTR)
}

func (port *windowsPort) readPin(pin uint32) (bool, error) {
	var bits uint32
	if err := getCommModemStatus(port.handle, &bits); err != nil {
		return false, mapOsError(err)
	}
	return bits&pin != 0, nil
}

func (port *windowsPort) CTS() (bool, error) {
	return port.readPin(msCTSOn)
}

func (port *windowsPort) DSR() (bool, error) {
	return port.readPin(msDSROn)
}

func (port *windowsPort) RingIndicator() (bool, error) {
	return port.readPin(msRingOn)
}

func (port *windowsPort) CarrierDetect() (bool, error) {
	return port.readPin(msRLSDOn)
}

func (port *windowsPort) SetBreak() error {
	if err := setCommBreak(port.handle); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *windowsPort) ClearBreak() error {
	if err := clearCommBreak(port.handle); err != nil {
		return mapOsError(err)
	}
	return nil
}

func (port *windowsPort) queueDepth() (*comstat, error) {
	var errors uint32
	stat := &comstat{}
	// ClearCommError also resets any latched error flags on the device;
	// see the Port interface documentation.
	if err := clearCommError(port.handle, &errors, stat); err != nil {
		return nil, mapOsError(err)
	}
	return stat, nil
}

func (port *windowsPort) BytesToRead() (uint32, error) {
	stat, err := port.queueDepth()
	if err != nil {
		return 0, err
	}
	return stat.inque, nil
}

func (port *windowsPort) BytesToWrite() (uint32, error) {
	stat, err := port.queueDepth()
	if err != nil {
		return 0, err
	}
	return stat.outque, nil
}

func (port *windowsPort) Clear(buffers ClearBuffer) error {
	var flags uint32
	switch buffers {
	case ClearInput:
		flags = purgeRxAbort | purgeRxClear
	case ClearOutput:
		flags = purgeTxAbort | purgeTxClear
	case ClearAll:
		flags = purgeRxAbort | purgeRxClear | purgeTxAbort | purgeTxClear
	default:
		return &PortError{code: InvalidInput}
	}
	if err := purgeComm(port.handle, flags); err != nil {
		return mapOsError(err)
	}
	return nil
}
