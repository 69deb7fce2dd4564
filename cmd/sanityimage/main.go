package main

import "github.com/hmans/sanityimage/cmd"

func main() {
	cmd.Execute()
}
