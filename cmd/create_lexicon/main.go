// create_lexicon builds a Lexicon from the minimal per-field-line
// corpus format (internal/corpus) and writes it to disk, per spec.md
// §6's `create_lexicon <repo> <out>` entry point.
package main

import (
	"fmt"
	"os"

	"github.com/kittclouds/rankgen/internal/corpus"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: create_lexicon <repo> <out>\n")
		os.Exit(1)
	}
	repo, out := os.Args[1], os.Args[2]

	f, err := os.Open(repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create_lexicon: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	built, err := corpus.Build(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create_lexicon: %v\n", err)
		os.Exit(1)
	}

	if err := built.Lexicon.Save(out); err != nil {
		fmt.Fprintf(os.Stderr, "create_lexicon: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "create_lexicon: wrote %d terms over %d documents to %s\n",
		len(built.Lexicon.Terms)-1, built.Lexicon.NumDocs, out)
}
