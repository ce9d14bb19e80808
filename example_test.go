//
// Copyright 2021-2024 Luka Ober. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialport_test

import (
	"fmt"
	"log"
	"time"

	serialport "github.com/LukaOber/serialport-go"
)

func ExampleGetPortsList() {
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
}

func ExampleOpen() {
	mode := &serialport.Mode{
		BaudRate:    9600,
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

	if _, err := port.Write([]byte("PING")); err != nil {
		log.Fatal(err)
	}
	if err := port.Drain(); err != nil {
		log.Fatal(err)
	}

	buff := make([]byte, 16)
	n, err := port.Read(buff)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Received: %q\n", buff[:n])
}

func ExamplePort_SetRTS() {
	port, err := serialport.Open("COM3", &serialport.Mode{})
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

	if err := port.SetRTS(true); err != nil {
		log.Fatal(err)
	}
	cts, err := port.CTS()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CTS: %v\n", cts)
}

func ExamplePort_Clone() {
	port, err := serialport.Open("COM7", &serialport.Mode{
		BaudRate:    115200,
		ReadTimeout: time.Second,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

	// One goroutine reads while the main goroutine writes.
	reader, err := port.Clone()
	if err != nil {
		log.Fatal(err)
	}
	defer reader.Close()

	go func() {
		buff := make([]byte, 128)
		for {
			n, err := reader.Read(buff)
			if err != nil {
				return
			}
			fmt.Printf("%s", buff[:n])
		}
	}()

	if _, err := port.Write([]byte("AT\r\n")); err != nil {
		log.Fatal(err)
	}
}
