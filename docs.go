package main

import (
	"fmt"
	"os"

	"github.com/emollier/kleborate/cmd"
	"github.com/spf13/cobra/doc"
)

// makeDocs parses the commands and outputs Markdown documentation files.
func makeDocs() {
	if err := os.MkdirAll("./docs", 0755); err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := doc.GenMarkdownTree(cmd.RootCmd, "./docs"); err != nil {
		fmt.Println(err.Error())
	}
}
