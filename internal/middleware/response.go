package middleware

import (
	"net/http"

	"github.com/samrambhak/community-server-go/internal/httputil"
)

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}
