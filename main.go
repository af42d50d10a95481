package main

import "laohotel/cmd"

func main() {
	cmd.Execute()
}
