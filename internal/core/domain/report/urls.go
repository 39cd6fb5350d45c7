package report

import (
	"net/url"
	"strconv"
	"strings"
)

// ClearFiltersURL drops the whole query string.
func ClearFiltersURL(current *url.URL) string {
	return current.Path
}

// ExportURL keeps the current query, overlays the non-blank filter form values
// and asks for the CSV download.
func ExportURL(current *url.URL, form url.Values) string {
	u, q := overlay(current, form)
	q.Set(ParamFormat, FormatCSV)
	u.RawQuery = q.Encode()
	return u.String()
}

// PerPageURL changes the page size and goes back to the first page.
func PerPageURL(current *url.URL, form url.Values, perPage int) string {
	u, q := overlay(current, form)
	q.Set(ParamPerPage, strconv.Itoa(perPage))
	q.Set(ParamPage, "1")
	u.RawQuery = q.Encode()
	return u.String()
}

func PageURL(current *url.URL, page int) string {
	u := *current
	q := u.Query()
	q.Set(ParamPage, strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

func overlay(current *url.URL, form url.Values) (url.URL, url.Values) {
	u := *current
	q := u.Query()
	for key, values := range form {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				q.Set(key, v)
			}
		}
	}
	return u, q
}
