package main

import "addressfinder-backend/cmd/addressfinder/cmd"

func main() {
	cmd.Execute()
}
