package main

import (
	"github.com/byxorna/doclib/cmd"
)

func main() {
	cmd.Execute()
}
