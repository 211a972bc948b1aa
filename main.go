package main

import "github.com/atarifoundry/spartatr/cmd"

func main() {
	cmd.Execute()
}
