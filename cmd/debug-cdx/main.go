// Debug tool to test CDX capture fetching directly
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/eclogic/waybacktweets/internal/api"
)

func main() {
	handle := "jack"
	if len(os.Args) > 1 {
		handle = os.Args[1]
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})

	fmt.Printf("Testing CDX fetch for handle: %s\n", handle)
	fmt.Printf("Query: %s\n", api.BuildCDXQuery(handle))

	client := api.NewWaybackClient(logger)

	captures, err := client.FetchCaptures(handle)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Captures: %d\n", len(captures))

	fmt.Println("\nFirst captures:")
	for i, c := range captures {
		if i >= 3 {
			fmt.Printf("  ... and %d more\n", len(captures)-3)
			break
		}
		status := "-"
		if c.StatusCode != nil {
			status = fmt.Sprintf("%d", *c.StatusCode)
		}
		fmt.Printf("  %d. %s %s (status: %s)\n", i+1, c.Timestamp, c.URL, status)
	}
}
