package main

import "github.com/frahmantamala/hr-leave-management/cmd"

func main() {
	cmd.Execute()
}
