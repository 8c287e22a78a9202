package handler

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/httputil"
	"github.com/samrambhak/community-server-go/internal/util"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// writeSuccess writes {"success": true} merged with fields.
func writeSuccess(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

type actionEnvelope struct {
	Action string `json:"action"`
}

// readAction reads the JSON body and its "action" discriminator. The raw
// body is returned so each action can bind its own parameters.
func readAction(r *http.Request) (string, []byte, error) {
	body, err := readBody(r)
	if err != nil {
		return "", nil, err
	}
	var env actionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", nil, apperrors.ValidationError("Invalid request body")
	}
	return env.Action, body, nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, apperrors.ValidationError("Invalid request body")
	}
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return nil, apperrors.ValidationError("Invalid request body")
	}
	return body, nil
}

// decode reads and validates the request body into dst.
func decode(r *http.Request, dst any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return httputil.Bind(body, dst)
}

// bindIDs binds body into dst and canonicalizes the given id fields of dst.
func bindIDs(body []byte, dst any, ids ...*string) error {
	if err := httputil.Bind(body, dst); err != nil {
		return err
	}
	return canonicalIDs(ids...)
}

// canonicalIDs rewrites each non-empty id to its canonical uuid form. Empty
// ids are left for the service's required-field checks.
func canonicalIDs(ids ...*string) error {
	for _, id := range ids {
		if *id == "" {
			continue
		}
		canonical, ok := util.CanonicalUUID(*id)
		if !ok {
			return apperrors.ValidationError("Invalid ID format")
		}
		*id = canonical
	}
	return nil
}
