package response

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationMessage flattens an ozzo error map to a single message, picking
// the first failing field in sorted order so responses are deterministic.
func ValidationMessage(err error) string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if ferr := verrs[field]; ferr != nil {
			return ferr.Error()
		}
	}
	return err.Error()
}
