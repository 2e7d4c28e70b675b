package service

import (
	"context"
	"testing"

	"admin-chatbot-be/internal/dto"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/pkg/serverutils"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/rag/source"
	"admin-chatbot-be/pkg/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceSearchPaginates(t *testing.T) {
	mem := recordstore.NewMemory()
	for i := 0; i < 25; i++ {
		mem.Seed("lms_batches", recordstore.Record{"id": i, "name": "batch"})
	}
	table, err := intent.DefaultKeywordTable()
	require.NoError(t, err)
	lms := source.NewStructuredAdapter(source.LMSSchema(), mem, table, logger.NewNop())
	svc := NewSourceService(source.NewRegistry(lms))

	res, err := svc.Search(context.Background(), &dto.SourceSearchRequest{Category: "lms", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, "lms", res.Category)
	assert.EqualValues(t, 25, res.Total)
	assert.Len(t, res.Records, 10)
	assert.True(t, res.HasMore)
}

func TestSourceSearchUnknownCategory(t *testing.T) {
	svc := NewSourceService(source.NewRegistry())
	_, err := svc.Search(context.Background(), &dto.SourceSearchRequest{Category: "hrms"})
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}
