package main

import "autolabel/cmd"

func main() {
	cmd.Execute()
}
