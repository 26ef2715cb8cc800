package main

import "github.com/oshokin/alarm-clock/cmd/clockd/cmd"

func main() {
	cmd.Execute()
}
