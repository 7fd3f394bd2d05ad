package migration

import (
	"fmt"

	"sheet-sync/feature/migration/platform"
	"sheet-sync/feature/sheet"
)

// BuildCreateFields validates a row's creation inputs and assembles the
// platform request. Validation problems accumulate into the returned
// list; they never abort the pass.
func BuildCreateFields(row *sheet.Row) (platform.CreateFields, []string) {
	var fields platform.CreateFields
	var problems []string

	finalURLs, err := row.List(sheet.FieldFinalURL)
	switch {
	case err != nil:
		problems = append(problems, err.Error())
	case len(finalURLs) == 0:
		problems = append(problems, fmt.Sprintf("%s: exactly one value is required", sheet.FieldFinalURL))
	case len(finalURLs) > 1:
		problems = append(problems, fmt.Sprintf("%s: exactly one value is required, got %d", sheet.FieldFinalURL, len(finalURLs)))
	default:
		fields.FinalURL = finalURLs[0]
	}

	mobileURLs, err := row.List(sheet.FieldMobileFinalURL)
	switch {
	case err != nil:
		problems = append(problems, err.Error())
	case len(mobileURLs) > 1:
		problems = append(problems, fmt.Sprintf("%s: at most one value is allowed, got %d", sheet.FieldMobileFinalURL, len(mobileURLs)))
	case len(mobileURLs) == 1:
		fields.MobileFinalURL = mobileURLs[0]
	}

	for _, req := range []struct {
		field string
		dest  *string
	}{
		{sheet.FieldHeadline1, &fields.Headline1},
		{sheet.FieldHeadline2, &fields.Headline2},
		{sheet.FieldDescription, &fields.Description},
	} {
		v, err := row.String(req.field)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if v == "" {
			problems = append(problems, fmt.Sprintf("%s is required", req.field))
			continue
		}
		*req.dest = v
	}

	path1, _ := row.String(sheet.FieldPath1)
	path2, _ := row.String(sheet.FieldPath2)
	if path2 != "" && path1 == "" {
		problems = append(problems, fmt.Sprintf("%s requires %s to be set", sheet.FieldPath2, sheet.FieldPath1))
	}
	fields.Path1 = path1
	fields.Path2 = path2

	params, err := row.Map(sheet.FieldCustomParameters)
	if err != nil {
		problems = append(problems, err.Error())
	} else if len(params) > 0 {
		fields.CustomParameters = params
	}

	return fields, problems
}
