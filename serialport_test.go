//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModeFromString(t *testing.T) {
	good_cases := map[string]*Mode{
		"8N1": {DataBits: DataBits8, Parity: NoParity, StopBits: OneStopBit},
		"7E2": {DataBits: DataBits7, Parity: EvenParity, StopBits: TwoStopBits},
		"5o1": {DataBits: DataBits5, Parity: OddParity, StopBits: OneStopBit},
		"6n2": {DataBits: DataBits6, Parity: NoParity, StopBits: TwoStopBits},
	}

	bad_cases := []string{"9N1", "8N3", "8R1", "8N", "115200N1", ""}

	for s, m := range good_cases {
		mode := &Mode{}
		err := ModeFromString(s, mode)
		if err != nil {
			t.Errorf("Failed to convert mode %q: %s", s, err)
		} else if !reflect.DeepEqual(mode, m) {
			t.Errorf("Mode %q should convert to %+v, got %+v", s, m, mode)
		}
	}

	for _, s := range bad_cases {
		mode := &Mode{}
		err := ModeFromString(s, mode)
		if err == nil {
			t.Errorf("Mode %q should be invalid, got %v", s, mode)
		} else if pe, ok := err.(*PortError); !ok || pe.Code() != InvalidInput {
			t.Errorf("Mode %q should fail with InvalidInput, got %v", s, err)
		}
	}
}

func TestModeFromStringLeavesOtherFieldsAlone(t *testing.T) {
	mode := &Mode{BaudRate: 115200, FlowControl: HardwareFlowControl}
	require.NoError(t, ModeFromString("7E2", mode))
	require.Equal(t, uint32(115200), mode.BaudRate)
	require.Equal(t, HardwareFlowControl, mode.FlowControl)
}

func TestPortErrorText(t *testing.T) {
	require.EqualError(t, &PortError{code: Timeout}, "Operation timed out")
	require.EqualError(t, &PortError{code: Unknown}, "Unrecognized port setting encountered")

	cause := errors.New("interface is down")
	wrapped := &PortError{code: OsError, causedBy: cause}
	require.EqualError(t, wrapped, "Operating system error: interface is down")
	require.ErrorIs(t, wrapped, cause)
}

func TestPortErrorMatchesWithErrorsAs(t *testing.T) {
	var err error = &PortError{code: NoDevice}
	var portErr *PortError
	require.ErrorAs(t, err, &portErr)
	require.Equal(t, NoDevice, portErr.Code())
}
