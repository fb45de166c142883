package main

import "github.com/minsh-project/minsh/cmd"

func main() {
	cmd.Execute()
}
