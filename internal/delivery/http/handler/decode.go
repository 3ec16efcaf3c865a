package handler

import (
	"encoding/json"
	"net/http"
)

// decodeStrict decodes a JSON body, rejecting fields the target does not declare
func decodeStrict(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
