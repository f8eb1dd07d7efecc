package main

import "github.com/kozaktomas/attend-kiosk/cmd"

func main() {
	cmd.Execute()
}
