// create_inverted_index builds an InvertedIndex from the minimal
// per-field-line corpus format (internal/corpus) and writes it to disk,
// per spec.md §6's `create_inverted_index <repo> <out>` entry point.
package main

import (
	"fmt"
	"os"

	"github.com/kittclouds/rankgen/internal/corpus"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: create_inverted_index <repo> <out>\n")
		os.Exit(1)
	}
	repo, out := os.Args[1], os.Args[2]

	f, err := os.Open(repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create_inverted_index: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	built, err := corpus.Build(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create_inverted_index: %v\n", err)
		os.Exit(1)
	}

	if err := built.Inverted.Save(out); err != nil {
		fmt.Fprintf(os.Stderr, "create_inverted_index: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "create_inverted_index: wrote %d posting lists to %s\n",
		len(built.Inverted.Lists), out)
}
