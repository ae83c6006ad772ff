package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contentblocks "github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/internal/commands/importcmd"
)

type parseRequest struct {
	Markup *string `json:"markup"`
}

type blocksResponse struct {
	OwnerID *uuid.UUID                   `json:"owner_id,omitempty"`
	Blocks  []contentblocks.ContentBlock `json:"blocks"`
}

func (api *API) parseMarkup(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidPayload, err)
		return
	}
	if req.Markup == nil {
		RespondError(c, http.StatusBadRequest, codeInvalidPayload, errors.New("markup is required"))
		return
	}

	var parsed []contentblocks.ContentBlock
	err := api.handlers.Parse.Execute(c.Request.Context(), importcmd.ParseMarkupCommand{
		Markup:   *req.Markup,
		OnBlocks: func(out []contentblocks.ContentBlock) { parsed = out },
	})
	if err != nil {
		respondMappedError(c, err)
		return
	}
	RespondOK(c, blocksResponse{Blocks: parsed})
}

func (api *API) resourceContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidID, err)
		return
	}
	ctx := c.Request.Context()

	if _, err := api.importer.GetResource(ctx, id); err != nil {
		respondMappedError(c, err)
		return
	}
	records, err := api.blocks.ListContent(ctx, id)
	if err != nil {
		respondMappedError(c, err)
		return
	}

	out := make([]contentblocks.ContentBlock, 0, len(records))
	for _, record := range records {
		out = append(out, record.Block())
	}
	RespondOK(c, blocksResponse{OwnerID: &id, Blocks: out})
}
