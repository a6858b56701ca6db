// internal/app/features/settings/form.go
package settings

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/coophub/internal/app/system/timezones"
)

// validZone rejects zones outside the curated list.
func validZone(value interface{}) error {
	id, _ := value.(string)
	if id != "" && !timezones.Valid(id) {
		return errors.New("timezone is not valid")
	}
	return nil
}

// formInt reads an integer field. Unparseable input yields -1 so range rules reject it.
func formInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	if err != nil {
		return -1
	}
	return v
}

// formBool reads a checkbox.
func formBool(r *http.Request, key string) bool {
	switch r.FormValue(key) {
	case "on", "true", "1":
		return true
	}
	return false
}

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}
