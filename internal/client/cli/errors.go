package cli

import (
	"errors"
	"fmt"
	"sort"

	"storepulse/internal/client/api"
)

// printRequestError turns a pipeline error into user-facing output. Field
// validation errors are listed per field; transport failures get a hint about
// connectivity. The 401 case is handled by the pipeline itself, so here it
// only needs a short line.
func printRequestError(err error) {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		printlnFn(warnStyle.Render("Cannot reach the server. Check your connection and try again."))

	case errors.Is(err, api.ErrUnauthorized):
		printlnFn(dangerStyle.Render("Not authorized."))

	default:
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			printlnFn(dangerStyle.Render(apiErr.Message))
			fields := make([]string, 0, len(apiErr.Fields))
			for f := range apiErr.Fields {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				for _, msg := range apiErr.Fields[f] {
					printlnFn(fmt.Sprintf("  %s: %s", f, msg))
				}
			}
			return
		}
		printlnFn(dangerStyle.Render("Error: " + err.Error()))
	}
}
