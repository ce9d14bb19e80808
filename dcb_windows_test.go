//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The control block translator is pure over the in-memory dcb, so the
// round-trip laws can be checked without a device.

func requireErrorCode(t *testing.T, err error, code PortErrorCode) {
	t.Helper()
	var portErr *PortError
	require.ErrorAs(t, err, &portErr)
	require.Equal(t, code, portErr.Code())
}

func TestDCBBaudRateRoundTrip(t *testing.T) {
	params := &dcb{}
	for _, rate := range []uint32{300, 9600, 115200, 2000000} {
		params.setBaudRate(rate)
		require.Equal(t, rate, params.baudRate())
	}
}

func TestDCBDataBitsRoundTrip(t *testing.T) {
	params := &dcb{}
	for _, bits := range []DataBits{DataBits5, DataBits6, DataBits7, DataBits8} {
		require.NoError(t, params.setDataBits(bits))
		got, err := params.dataBits()
		require.NoError(t, err)
		require.Equal(t, bits, got)
	}
}

func TestDCBParityRoundTrip(t *testing.T) {
	params := &dcb{}
	for _, parity := range []Parity{NoParity, OddParity, EvenParity} {
		require.NoError(t, params.setParity(parity))
		got, err := params.parity()
		require.NoError(t, err)
		require.Equal(t, parity, got)
	}
}

func TestDCBParityFlagTracksMode(t *testing.T) {
	params := &dcb{}
	require.NoError(t, params.setParity(OddParity))
	require.NotZero(t, params.Flags&dcbParity)
	require.NoError(t, params.setParity(NoParity))
	require.Zero(t, params.Flags&dcbParity)
}

func TestDCBStopBitsRoundTrip(t *testing.T) {
	params := &dcb{}
	for _, bits := range []StopBits{OneStopBit, TwoStopBits} {
		require.NoError(t, params.setStopBits(bits))
		got, err := params.stopBits()
		require.NoError(t, err)
		require.Equal(t, bits, got)
	}
}

func TestDCBFlowControlRoundTrip(t *testing.T) {
	params := &dcb{}
	params.initDefaults()
	// Order matters here: each mode must clear the previous mode's flags.
	for _, flow := range []FlowControl{
		HardwareFlowControl, SoftwareFlowControl, NoFlowControl,
		SoftwareFlowControl, HardwareFlowControl, NoFlowControl,
	} {
		require.NoError(t, params.setFlowControl(flow))
		require.Equal(t, flow, params.flowControl())
	}
}

func TestDCBFlowControlHardwareWinsOverSoftware(t *testing.T) {
	// Not reachable through setFlowControl, but external tooling can
	// leave both flag families set; hardware must be reported.
	params := &dcb{}
	params.Flags |= dcbOutXCTSFlow | dcbOutX | dcbInX
	require.Equal(t, HardwareFlowControl, params.flowControl())

	params = &dcb{}
	params.Flags |= dcbRTSControlEnable | dcbOutX
	require.Equal(t, HardwareFlowControl, params.flowControl())
}

func TestDCBUnknownEncodings(t *testing.T) {
	params := &dcb{}

	params.ByteSize = 9
	_, err := params.dataBits()
	requireErrorCode(t, err, Unknown)

	params.Parity = 3 // mark parity, never produced here
	_, err = params.parity()
	requireErrorCode(t, err, Unknown)

	params.StopBits = one5StopBits
	_, err = params.stopBits()
	requireErrorCode(t, err, Unknown)
}

func TestDCBRejectsOutOfDomainValues(t *testing.T) {
	params := &dcb{}
	requireErrorCode(t, params.setDataBits(DataBits(9)), InvalidInput)
	requireErrorCode(t, params.setParity(Parity(7)), InvalidInput)
	requireErrorCode(t, params.setStopBits(StopBits(3)), InvalidInput)
	requireErrorCode(t, params.setFlowControl(FlowControl(5)), InvalidInput)
}

func TestDCBSettersLeaveOtherFieldsAlone(t *testing.T) {
	params := &dcb{}
	params.initDefaults()
	require.NoError(t, params.setDataBits(DataBits7))
	require.NoError(t, params.setParity(EvenParity))
	params.setBaudRate(19200)
	require.NoError(t, params.setStopBits(TwoStopBits))

	got, err := params.dataBits()
	require.NoError(t, err)
	require.Equal(t, DataBits7, got)
	parity, err := params.parity()
	require.NoError(t, err)
	require.Equal(t, EvenParity, parity)
	require.Equal(t, uint32(19200), params.baudRate())
}

func TestDCBInitDefaults(t *testing.T) {
	params := &dcb{}
	params.initDefaults()
	require.NotZero(t, params.Flags&dcbBinary)
	require.Equal(t, uint32(dcbDTRControlEnable), params.Flags&^dcbDTRControlDisableMask)
	require.Zero(t, params.Flags&dcbAbortOnError)
	require.Zero(t, params.Flags&dcbNull)
	require.Equal(t, NoFlowControl, params.flowControl())
}
