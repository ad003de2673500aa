package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eclogic/waybacktweets/internal/api"
	"github.com/eclogic/waybacktweets/internal/db"
	"github.com/eclogic/waybacktweets/internal/models"
	"github.com/eclogic/waybacktweets/internal/ui"
	"github.com/joho/godotenv"
)

const defaultDBPath = "waybacktweets.db"

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	handleFlag := flag.String("handle", "", "Twitter username to query (skips the form)")
	fromFlag := flag.String("from", "", "Start date, YYYY-MM-DD (with -handle)")
	toFlag := flag.String("to", "", "End date, YYYY-MM-DD (with -handle)")
	statusFlag := flag.String("status", "", "Comma-separated status codes to filter, e.g. 200,404")
	dbPath := flag.String("db", "", "Path to the query history database")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	path := *dbPath
	if path == "" {
		path = os.Getenv("WAYBACK_DB")
	}
	if path == "" {
		path = defaultDBPath
	}

	database, err := db.New(path)
	if err != nil {
		ui.PrintError("Failed to initialize history database: " + err.Error())
		os.Exit(1)
	}
	defer database.Close()

	// First criteria may come from flags; later iterations always prompt
	flagCriteria, haveFlags, err := criteriaFromFlags(*handleFlag, *fromFlag, *toFlag, *statusFlag)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	for {
		var criteria models.Criteria
		if haveFlags {
			criteria = flagCriteria
			haveFlags = false
		} else {
			criteria, err = ui.PromptForQuery()
			if err != nil {
				// Form cancelled: quit quietly
				return
			}
		}

		outcome, err := ui.RunQuery(logger, database, criteria)
		if err != nil {
			ui.PrintError("Interactive mode failed: " + err.Error())
			os.Exit(1)
		}
		if !outcome.NewQuery {
			return
		}
	}
}

// criteriaFromFlags builds query criteria from command line flags.
// Returns haveFlags=false when no handle was given.
func criteriaFromFlags(handle, from, to, status string) (models.Criteria, bool, error) {
	if handle == "" {
		return models.Criteria{}, false, nil
	}

	parsed, err := api.ExtractHandle(handle)
	if err != nil {
		return models.Criteria{}, false, err
	}

	startDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return models.Criteria{}, false, err
	}
	endDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return models.Criteria{}, false, err
	}

	var codes []string
	if status != "" {
		for _, code := range strings.Split(status, ",") {
			codes = append(codes, strings.TrimSpace(code))
		}
	}

	return models.Criteria{
		Handle:      parsed,
		StartDate:   startDate,
		EndDate:     endDate,
		StatusCodes: codes,
	}, true, nil
}
