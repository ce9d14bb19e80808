//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

// PortError is a platform independent error type for serial ports.
type PortError struct {
	code     PortErrorCode
	causedBy error
}

// PortErrorCode is a code to easily identify the type of error.
type PortErrorCode int

const (
	// NoDevice the device does not exist or access to it was denied
	NoDevice PortErrorCode = iota
	// InvalidInput the port name or a configuration value supplied by the
	// caller is outside the supported domain
	InvalidInput
	// Unknown a native setting could not be decoded to any portable value,
	// usually because an external tool reconfigured the device
	Unknown
	// OsError an operating system call failed; the native error is
	// available through Unwrap
	OsError
	// Timeout a read blocked for the full timeout without receiving a byte
	Timeout
	// ErrorEnumeratingPorts an error occurred while listing serial ports
	ErrorEnumeratingPorts
)

// EncodedErrorString returns a string explaining the error code.
func (e *PortError) EncodedErrorString() string {
	switch e.code {
	case NoDevice:
		return "Serial port not found or inaccessible"
	case InvalidInput:
		return "Invalid port name or setting"
	case Unknown:
		return "Unrecognized port setting encountered"
	case OsError:
		return "Operating system error"
	case Timeout:
		return "Operation timed out"
	case ErrorEnumeratingPorts:
		return "Could not enumerate serial ports"
	default:
		return "Other error"
	}
}

// Error returns the complete error code with details on the cause of the error.
func (e *PortError) Error() string {
	if e.causedBy != nil {
		return e.EncodedErrorString() + ": " + e.causedBy.Error()
	}
	return e.EncodedErrorString()
}

// Code returns an identifier for the kind of error occurred.
func (e *PortError) Code() PortErrorCode {
	return e.code
}

// Unwrap returns the underlying native error, if any.
func (e *PortError) Unwrap() error {
	return e.causedBy
}
