package main

import "github.com/adilsaaly/trackport/cmd"

func main() {
	cmd.Execute()
}
