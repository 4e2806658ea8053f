// file: common/response.go

package common

import (
	"encoding/json"
	"go-auth-api/model"
	"net/http"
)

// WriteSuccess emits the standard success envelope with the given status code.
func WriteSuccess(w http.ResponseWriter, code int, resp model.SuccessResponse) {
	if resp.Status == "" {
		resp.Status = "success"
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
