package main

import "github.com/oshokin/alarm-clock/cmd/clockctl/cmd"

func main() {
	cmd.Execute()
}
