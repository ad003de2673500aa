package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/eclogic/waybacktweets/internal/api"
	"github.com/eclogic/waybacktweets/internal/models"
)

const dateLayout = "2006-01-02"

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// validateDate rejects anything that is not a YYYY-MM-DD calendar date
func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("date cannot be empty")
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// PromptForQuery collects the handle, date range and optional status code
// filter for one query. Range ordering is deliberately not validated here:
// the pipeline rejects it and the shell shows the error banner, so the
// check lives in exactly one place.
func PromptForQuery() (models.Criteria, error) {
	var handleInput, startInput, endInput string
	var statusCodes []string

	statusOptions := make([]huh.Option[string], len(models.StatusCodeOptions))
	for i, code := range models.StatusCodeOptions {
		statusOptions[i] = huh.NewOption(code, code)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Twitter username").
				Description("Handle, @handle, or profile URL (e.g., elonmusk)").
				Placeholder("elonmusk").
				Value(&handleInput).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("username cannot be empty")
					}
					if _, err := api.ExtractHandle(s); err != nil {
						return err
					}
					return nil
				}),
			huh.NewInput().
				Title("Start date").
				Description("Start of the filter range (YYYY-MM-DD)").
				Placeholder("2024-01-01").
				Value(&startInput).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Description("End of the filter range (YYYY-MM-DD)").
				Placeholder("2024-12-31").
				Value(&endInput).
				Validate(validateDate),
			huh.NewMultiSelect[string]().
				Title("Filter by archived status codes (optional)").
				Description("Leave empty to skip status filtering").
				Options(statusOptions...).
				Value(&statusCodes),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return models.Criteria{}, fmt.Errorf("prompt cancelled: %w", err)
	}

	handle, err := api.ExtractHandle(sanitizeInput(handleInput))
	if err != nil {
		return models.Criteria{}, err
	}

	// Validated above; parse cannot fail here
	startDate, _ := time.Parse(dateLayout, strings.TrimSpace(startInput))
	endDate, _ := time.Parse(dateLayout, strings.TrimSpace(endInput))

	return models.Criteria{
		Handle:      handle,
		StartDate:   startDate,
		EndDate:     endDate,
		StatusCodes: statusCodes,
	}, nil
}
