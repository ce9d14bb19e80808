//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

/*
Package serialport is a portable abstraction over RS-232-class serial
devices.

It is possible to get the list of available serial ports with the
GetPortsList function:

	ports, err := serialport.GetPortsList()
	if err != nil {
		log.Fatal(err)
	}
	if len(ports) == 0 {
		log.Fatal("No serial ports found!")
	}
	for _, port := range ports {
		fmt.Printf("Found port: %v\n", port)
	}

A port is opened with the Open function. The Mode parameter carries the
whole configuration, line settings and timeouts alike, and is applied
atomically before Open returns:

	mode := &serialport.Mode{
		BaudRate:    115200,
		DataBits:    serialport.DataBits8,
		Parity:      serialport.NoParity,
		StopBits:    serialport.OneStopBit,
		ReadTimeout: 500 * time.Millisecond,
	}
	port, err := serialport.Open("COM10", mode)
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

Zero-valued Mode fields fall back to 9600 8N1 with no flow control and no
timeouts.

Read blocks until at least one byte arrives or the read timeout expires;
a timeout is reported as a *PortError with code Timeout, never as a
zero-byte success:

	buff := make([]byte, 128)
	n, err := port.Read(buff)
	if err != nil {
		var portErr *serialport.PortError
		if errors.As(err, &portErr) && portErr.Code() == serialport.Timeout {
			// no data within ReadTimeout
		}
	}

Every line setting has a get/set pair that round-trips through the device
itself, so two handles to the same device always agree on baud rate,
parity and friends. Timeouts are the exception: their native encoding
cannot be read back, so each Port caches its own intent. Clone, the
escape hatch for concurrent read/write use, therefore snapshots the
timeout cache, and the two caches may diverge afterwards.

This library doesn't make use of cgo, so it's a pure go library that can
be easily cross compiled.
*/
package serialport
