package main

import (
	"fmt"
	"os"

	"github.com/sketchdev/promptsicle/pkg/promptsicle"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("promptsicle v%s\n", promptsicle.Version)
		return
	}

	fmt.Println("promptsicle CLI")
	fmt.Println("===============")
	fmt.Printf("Version: %s\n", promptsicle.Version)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  promptsicle version    Show version information")
	fmt.Println()
	fmt.Println("promptsicle optimizes multi-stage LLM prompts against a scoring")
	fmt.Println("function you supply. See pkg/promptsicle for the library API.")
}
