package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-onboarding/internal/commands/importcmd"
	"github.com/goliatone/go-onboarding/internal/importer"
)

func (api *API) importRecords(c *gin.Context) {
	dryRun, err := queryBool(c, "dry_run")
	if err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidPayload, err)
		return
	}
	replace, err := queryBool(c, "replace")
	if err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidPayload, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, api.maxPayloadBytes))
	if err != nil {
		respondMappedError(c, err)
		return
	}
	payload, err := importer.DecodePayload(body)
	if err != nil {
		status, code := mapError(err)
		if status == http.StatusInternalServerError {
			status, code = http.StatusBadRequest, codeInvalidPayload
		}
		RespondError(c, status, code, err)
		return
	}

	var result *importer.Result
	err = api.handlers.Import.Execute(c.Request.Context(), importcmd.ImportRecordsCommand{
		Payload:  &payload,
		DryRun:   dryRun,
		Replace:  replace,
		OnResult: func(r *importer.Result) { result = r },
	})
	if err != nil {
		respondMappedError(c, err)
		return
	}

	status := http.StatusCreated
	if dryRun {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

func queryBool(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
