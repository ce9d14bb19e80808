//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// The termios translator is pure over the in-memory structure, so the
// round-trip laws can be checked without a device.

func requireErrorCode(t *testing.T, err error, code PortErrorCode) {
	t.Helper()
	var portErr *PortError
	require.ErrorAs(t, err, &portErr)
	require.Equal(t, code, portErr.Code())
}

func TestTermiosBaudRateRoundTrip(t *testing.T) {
	settings := &unix.Termios{}
	for rate := range baudRateMap {
		require.NoError(t, setTermiosBaudRate(settings, rate))
		got, err := termiosBaudRate(settings)
		require.NoError(t, err)
		require.Equal(t, rate, got)
	}
}

func TestTermiosBaudRateRejectsNonStandardRate(t *testing.T) {
	settings := &unix.Termios{}
	requireErrorCode(t, setTermiosBaudRate(settings, 12345), InvalidInput)
}

func TestTermiosDataBitsRoundTrip(t *testing.T) {
	settings := &unix.Termios{}
	for _, bits := range []DataBits{DataBits5, DataBits6, DataBits7, DataBits8} {
		require.NoError(t, setTermiosDataBits(settings, bits))
		got, err := termiosDataBits(settings)
		require.NoError(t, err)
		require.Equal(t, bits, got)
	}
}

func TestTermiosParityRoundTrip(t *testing.T) {
	settings := &unix.Termios{}
	for _, parity := range []Parity{NoParity, OddParity, EvenParity} {
		require.NoError(t, setTermiosParity(settings, parity))
		got, err := termiosParity(settings)
		require.NoError(t, err)
		require.Equal(t, parity, got)
	}
}

func TestTermiosParityMarkSpaceIsUnknown(t *testing.T) {
	settings := &unix.Termios{}
	settings.Cflag |= unix.PARENB | unix.CMSPAR
	_, err := termiosParity(settings)
	requireErrorCode(t, err, Unknown)
}

func TestTermiosStopBitsRoundTrip(t *testing.T) {
	settings := &unix.Termios{}
	for _, bits := range []StopBits{OneStopBit, TwoStopBits} {
		require.NoError(t, setTermiosStopBits(settings, bits))
		got, err := termiosStopBits(settings)
		require.NoError(t, err)
		require.Equal(t, bits, got)
	}
}

func TestTermiosFlowControlRoundTrip(t *testing.T) {
	settings := &unix.Termios{}
	for _, flow := range []FlowControl{
		HardwareFlowControl, SoftwareFlowControl, NoFlowControl,
		SoftwareFlowControl, HardwareFlowControl, NoFlowControl,
	} {
		require.NoError(t, setTermiosFlowControl(settings, flow))
		require.Equal(t, flow, termiosFlowControl(settings))
	}
}

func TestTermiosFlowControlHardwareWinsOverSoftware(t *testing.T) {
	settings := &unix.Termios{}
	settings.Cflag |= unix.CRTSCTS
	settings.Iflag |= unix.IXON | unix.IXOFF
	require.Equal(t, HardwareFlowControl, termiosFlowControl(settings))
}

func TestTermiosRejectsOutOfDomainValues(t *testing.T) {
	settings := &unix.Termios{}
	requireErrorCode(t, setTermiosDataBits(settings, DataBits(9)), InvalidInput)
	requireErrorCode(t, setTermiosParity(settings, Parity(7)), InvalidInput)
	requireErrorCode(t, setTermiosStopBits(settings, StopBits(3)), InvalidInput)
	requireErrorCode(t, setTermiosFlowControl(settings, FlowControl(5)), InvalidInput)
}
