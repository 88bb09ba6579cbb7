package main

import (
	"os"

	"github.com/emollier/kleborate/cmd"
)

func main() {
	// "docs" regenerates the Markdown command documentation
	if len(os.Args) > 1 && os.Args[1] == "docs" {
		makeDocs()
		return
	}

	cmd.Execute() // initialize cobra commands
}
