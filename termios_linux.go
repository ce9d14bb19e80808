//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport

import "golang.org/x/sys/unix"

// Translation between the portable Mode enums and the termios structure.
// As with the Windows control block, the per-field functions work on a
// local copy and the whole structure is committed in a single TCSETS call.

var baudRateMap = map[uint32]uint32{
	50:      unix.B50,
	75:      unix.B75,
	110:     unix.B110,
	134:     unix.B134,
	150:     unix.B150,
	200:     unix.B200,
	300:     unix.B300,
	600:     unix.B600,
	1200:    unix.B1200,
	1800:    unix.B1800,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	500000:  unix.B500000,
	576000:  unix.B576000,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	1152000: unix.B1152000,
	1500000: unix.B1500000,
	2000000: unix.B2000000,
	2500000: unix.B2500000,
	3000000: unix.B3000000,
	3500000: unix.B3500000,
	4000000: unix.B4000000,
}

var dataBitsMap = map[DataBits]uint32{
	DataBits5: unix.CS5,
	DataBits6: unix.CS6,
	DataBits7: unix.CS7,
	DataBits8: unix.CS8,
}

func getTermios(handle int) (*unix.Termios, error) {
	settings, err := unix.IoctlGetTermios(handle, unix.TCGETS)
	if err != nil {
		return nil, mapOsError(err)
	}
	return settings, nil
}

func setTermios(handle int, settings *unix.Termios) error {
	if err := unix.IoctlSetTermios(handle, unix.TCSETS, settings); err != nil {
		return mapOsError(err)
	}
	return nil
}

// setTermiosRawMode disables all line discipline processing so the port
// carries an opaque byte stream. Reads are paced by select, not by VTIME.
func setTermiosRawMode(settings *unix.Termios) {
	settings.Cflag |= unix.CREAD | unix.CLOCAL

	settings.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHOK |
		unix.ECHONL | unix.ECHOCTL | unix.ECHOPRT | unix.ECHOKE | unix.ISIG | unix.IEXTEN
	settings.Iflag &^= unix.INPCK | unix.IGNPAR | unix.PARMRK | unix.ISTRIP |
		unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IUCLC
	settings.Oflag &^= unix.OPOST

	settings.Cc[unix.VMIN] = 1
	settings.Cc[unix.VTIME] = 0
}

func setTermiosBaudRate(settings *unix.Termios, rate uint32) error {
	baudRate, ok := baudRateMap[rate]
	if !ok {
		return &PortError{code: InvalidInput}
	}
	settings.Cflag &^= unix.CBAUD
	settings.Cflag |= baudRate
	settings.Ispeed = baudRate
	settings.Ospeed = baudRate
	return nil
}

func termiosBaudRate(settings *unix.Termios) (uint32, error) {
	baudRate := settings.Cflag & unix.CBAUD
	for rate, b := range baudRateMap {
		if b == baudRate {
			return rate, nil
		}
	}
	return 0, &PortError{code: Unknown}
}

func setTermiosDataBits(settings *unix.Termios, bits DataBits) error {
	databits, ok := dataBitsMap[bits]
	if !ok {
		return &PortError{code: InvalidInput}
	}
	settings.Cflag &^= unix.CSIZE
	settings.Cflag |= databits
	return nil
}

func termiosDataBits(settings *unix.Termios) (DataBits, error) {
	for bits, flag := range dataBitsMap {
		if settings.Cflag&unix.CSIZE == flag {
			return bits, nil
		}
	}
	return 0, &PortError{code: Unknown}
}

func setTermiosParity(settings *unix.Termios, parity Parity) error {
	switch parity {
	case NoParity:
		settings.Cflag &^= unix.PARENB | unix.PARODD | unix.CMSPAR
	case OddParity:
		settings.Cflag &^= unix.CMSPAR
		settings.Cflag |= unix.PARENB | unix.PARODD
	case EvenParity:
		settings.Cflag &^= unix.PARODD | unix.CMSPAR
		settings.Cflag |= unix.PARENB
	default:
		return &PortError{code: InvalidInput}
	}
	return nil
}

func termiosParity(settings *unix.Termios) (Parity, error) {
	if settings.Cflag&unix.CMSPAR != 0 {
		// Mark and space parity are not produced by this library.
		return 0, &PortError{code: Unknown}
	}
	if settings.Cflag&unix.PARENB == 0 {
		return NoParity, nil
	}
	if settings.Cflag&unix.PARODD != 0 {
		return OddParity, nil
	}
	return EvenParity, nil
}

func setTermiosStopBits(settings *unix.Termios, bits StopBits) error {
	switch bits {
	case OneStopBit:
		settings.Cflag &^= unix.CSTOPB
	case TwoStopBits:
		settings.Cflag |= unix.CSTOPB
	default:
		return &PortError{code: InvalidInput}
	}
	return nil
}

func termiosStopBits(settings *unix.Termios) (StopBits, error) {
	if settings.Cflag&unix.CSTOPB != 0 {
		return TwoStopBits, nil
	}
	return OneStopBit, nil
}

func setTermiosFlowControl(settings *unix.Termios, flow FlowControl) error {
	switch flow {
	case NoFlowControl:
		settings.Cflag &^= unix.CRTSCTS
		settings.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	case SoftwareFlowControl:
		settings.Cflag &^= unix.CRTSCTS
		settings.Iflag |= unix.IXON | unix.IXOFF
		settings.Iflag &^= unix.IXANY
	case HardwareFlowControl:
		settings.Cflag |= unix.CRTSCTS
		settings.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	default:
		return &PortError{code: InvalidInput}
	}
	return nil
}

// termiosFlowControl mirrors the decode priority of the Windows backend:
// hardware handshake is checked before the software characters.
func termiosFlowControl(settings *unix.Termios) FlowControl {
	if settings.Cflag&unix.CRTSCTS != 0 {
		return HardwareFlowControl
	}
	if settings.Iflag&(unix.IXON|unix.IXOFF) != 0 {
		return SoftwareFlowControl
	}
	return NoFlowControl
}
