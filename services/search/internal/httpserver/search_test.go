package httpserver

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/testutil"
)

type stubSearcher struct {
	calls    int
	gotQuery string
	gotFrom  int
	gotSize  int
	total    int64
	shoes    []models.Shoe
	err      error
}

func (s *stubSearcher) Search(_ context.Context, query string, from, size int) (int64, []models.Shoe, error) {
	s.calls++
	s.gotQuery, s.gotFrom, s.gotSize = query, from, size
	return s.total, s.shoes, s.err
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	stub := &stubSearcher{}
	e := testutil.NewEcho()
	Register(e, &Deps{SearchHandler: &SearchHTTP{Index: stub}})

	rec := testutil.DoJSON(t, e, http.MethodGet, "/search?q=%20%20", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	testutil.DecodeJSON(t, rec, &resp)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(0), resp.Meta.Total)
	assert.Zero(t, stub.calls)
}

func TestSearch_Paginates(t *testing.T) {
	t.Parallel()

	stub := &stubSearcher{
		total: 25,
		shoes: []models.Shoe{{ID: uuid.New(), Brand: "Nike", Model: "Pegasus"}},
	}
	e := testutil.NewEcho()
	Register(e, &Deps{SearchHandler: &SearchHTTP{Index: stub}})

	rec := testutil.DoJSON(t, e, http.MethodGet, "/search?q=nike&page=2&size=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	testutil.DecodeJSON(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Nike", resp.Data[0].Brand)
	assert.Equal(t, "nike", stub.gotQuery)
	assert.Equal(t, 10, stub.gotFrom)
	assert.Equal(t, 10, stub.gotSize)
	assert.Equal(t, int64(25), resp.Meta.Total)
	assert.Equal(t, int64(3), resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
	assert.True(t, resp.Meta.HasPrev)
}

func TestSearch_IndexFailure(t *testing.T) {
	t.Parallel()

	stub := &stubSearcher{err: errors.New("cluster down")}
	e := testutil.NewEcho()
	Register(e, &Deps{SearchHandler: &SearchHTTP{Index: stub}})

	rec := testutil.DoJSON(t, e, http.MethodGet, "/search?q=boots", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "cluster down")
}
