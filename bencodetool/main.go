package main

import "github.com/uber/kraken-bencode/bencodetool/cmd"

func main() {
	cmd.Execute()
}
