package main

import "github.com/oshokin/boombim-admin/cmd/boombim-admin/cmd"

func main() {
	cmd.Execute()
}
