package main

import "github.com/hydro-pipeline/hydro/cmd"

func main() {
	cmd.Execute()
}
