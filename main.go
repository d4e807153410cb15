package main

import "github.com/Manu343726/csrgen/cmd"

func main() {
	cmd.Execute()
}
