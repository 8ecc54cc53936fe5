package main

import "todo-service/cmd"

func main() {
	cmd.Execute()
}
