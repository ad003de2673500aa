// Headless exporter: runs one query and writes the filtered CSV to disk.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eclogic/waybacktweets/internal/api"
	"github.com/eclogic/waybacktweets/internal/models"
	"github.com/eclogic/waybacktweets/internal/tweets"
)

func main() {
	handleFlag := flag.String("handle", "", "Twitter username to query (required)")
	fromFlag := flag.String("from", "", "Start date, YYYY-MM-DD (required)")
	toFlag := flag.String("to", "", "End date, YYYY-MM-DD (required)")
	statusFlag := flag.String("status", "", "Comma-separated status codes to filter, e.g. 200,404")
	outFlag := flag.String("out", "", "Output file (default: {handle}_archived_tweets.csv)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	if *handleFlag == "" || *fromFlag == "" || *toFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	handle, err := api.ExtractHandle(*handleFlag)
	if err != nil {
		logger.Fatal("invalid handle", "err", err)
	}
	startDate, err := time.Parse("2006-01-02", *fromFlag)
	if err != nil {
		logger.Fatal("invalid start date", "err", err)
	}
	endDate, err := time.Parse("2006-01-02", *toFlag)
	if err != nil {
		logger.Fatal("invalid end date", "err", err)
	}

	var codes []string
	if *statusFlag != "" {
		for _, code := range strings.Split(*statusFlag, ",") {
			codes = append(codes, strings.TrimSpace(code))
		}
	}

	criteria := models.Criteria{
		Handle:      handle,
		StartDate:   startDate,
		EndDate:     endDate,
		StatusCodes: codes,
	}

	client := api.NewWaybackClient(logger)
	result, err := tweets.Run(client, criteria)
	if err != nil {
		var inputErr *tweets.InvalidInputError
		if errors.As(err, &inputErr) {
			logger.Fatal("rejected", "err", err)
		}
		logger.Fatal("query failed", "err", err)
	}

	switch result.Outcome {
	case tweets.OutcomeNoCaptures:
		logger.Warn("no archived tweets found for the given username", "handle", handle)
		return
	case tweets.OutcomeNoMatches:
		logger.Warn("no tweets match the specified filters",
			"handle", handle, "captures", result.CaptureCount)
		return
	}

	filename := *outFlag
	if filename == "" {
		filename = result.Filename
	}
	if err := os.WriteFile(filename, result.CSV, 0644); err != nil {
		logger.Fatal("failed to write export", "err", err)
	}

	fmt.Printf("✓ Exported %d tweets to %s\n", len(result.Table), filename)
}
