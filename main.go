package main

import "venue-manager/cmd"

func main() {
	cmd.Execute()
}
