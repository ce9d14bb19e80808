//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

import (
	"syscall"
	"unsafe"
)

// The functions in this file translate between the portable Mode enums and
// the DCB control block. The per-field setters and getters only touch the
// local copy of the block; getDCB and setDCB move the whole block to and
// from the device in one call each, so a concurrent reader of the same
// descriptor never observes a partially updated block.

func getDCB(handle syscall.Handle) (*dcb, error) {
	params := &dcb{}
	params.DCBlength = uint32(unsafe.Sizeof(*params))
	if err := getCommState(handle, params); err != nil {
		return nil, mapOsError(err)
	}
	return params, nil
}

func setDCB(handle syscall.Handle, params *dcb) error {
	if err := setCommState(handle, params); err != nil {
		return mapOsError(err)
	}
	return nil
}

// initDefaults puts the control block into the binary, non-intrusive state
// every freshly opened port starts from. The handshake flags are owned by
// setFlowControl and are not touched here.
func (params *dcb) initDefaults() {
	params.Flags |= dcbBinary
	params.Flags &= dcbDTRControlDisableMask
	params.Flags |= dcbDTRControlEnable
	params.Flags &^= dcbOutXDSRFlow
	params.Flags &^= dcbDSRSensitivity
	params.Flags |= dcbTXContinueOnXOFF
	params.Flags &^= dcbErrorChar
	params.Flags &^= dcbNull
	params.Flags &^= dcbAbortOnError
	params.XonLim = 2048
	params.XoffLim = 512
	params.XonChar = 17 // DC1
	params.XoffChar = 19 // DC3
}

func (params *dcb) setBaudRate(rate uint32) {
	params.BaudRate = rate
}

func (params *dcb) baudRate() uint32 {
	return params.BaudRate
}

func (params *dcb) setDataBits(bits DataBits) error {
	switch bits {
	case DataBits5, DataBits6, DataBits7, DataBits8:
		params.ByteSize = byte(bits)
		return nil
	default:
		return &PortError{code: InvalidInput}
	}
}

func (params *dcb) dataBits() (DataBits, error) {
	switch params.ByteSize {
	case 5:
		return DataBits5, nil
	case 6:
		return DataBits6, nil
	case 7:
		return DataBits7, nil
	case 8:
		return DataBits8, nil
	default:
		return 0, &PortError{code: Unknown}
	}
}

func (params *dcb) setParity(parity Parity) error {
	switch parity {
	case NoParity:
		params.Parity = noParity
		params.Flags &^= dcbParity
	case OddParity:
		params.Parity = oddParity
		params.Flags |= dcbParity
	case EvenParity:
		params.Parity = evenParity
		params.Flags |= dcbParity
	default:
		return &PortError{code: InvalidInput}
	}
	return nil
}

func (params *dcb) parity() (Parity, error) {
	switch params.Parity {
	case noParity:
		return NoParity, nil
	case oddParity:
		return OddParity, nil
	case evenParity:
		return EvenParity, nil
	default:
		// Mark and space parity are not produced by this library.
		return 0, &PortError{code: Unknown}
	}
}

func (params *dcb) setStopBits(bits StopBits) error {
	switch bits {
	case OneStopBit:
		params.StopBits = oneStopBit
	case TwoStopBits:
		params.StopBits = twoStopBits
	default:
		return &PortError{code: InvalidInput}
	}
	return nil
}

func (params *dcb) stopBits() (StopBits, error) {
	switch params.StopBits {
	case oneStopBit:
		return OneStopBit, nil
	case twoStopBits:
		return TwoStopBits, nil
	default:
		// one5StopBits is not produced by this library.
		return 0, &PortError{code: Unknown}
	}
}

func (params *dcb) setFlowControl(flow FlowControl) error {
	switch flow {
	case NoFlowControl:
		params.Flags &^= dcbOutXCTSFlow
		params.Flags &^= dcbRTSControlMask
		params.Flags &^= dcbOutX
		params.Flags &^= dcbInX
	case SoftwareFlowControl:
		params.Flags &^= dcbOutXCTSFlow
		params.Flags &^= dcbRTSControlMask
		params.Flags |= dcbOutX
		params.Flags |= dcbInX
	case HardwareFlowControl:
		params.Flags |= dcbOutXCTSFlow
		params.Flags &^= dcbRTSControlMask
		params.Flags |= dcbRTSControlHandshake
		params.Flags &^= dcbOutX
		params.Flags &^= dcbInX
	default:
		return &PortError{code: InvalidInput}
	}
	return nil
}

// flowControl decodes the handshake flags. The hardware flags are checked
// before the software ones: a block carrying both families at once (not
// reachable through setFlowControl, but possible via external tooling)
// reports hardware flow control.
func (params *dcb) flowControl() FlowControl {
	if params.Flags&dcbOutXCTSFlow != 0 || params.Flags&dcbRTSControlMask != 0 {
		return HardwareFlowControl
	}
	if params.Flags&(dcbOutX|dcbInX) != 0 {
		return SoftwareFlowControl
	}
	return NoFlowControl
}
