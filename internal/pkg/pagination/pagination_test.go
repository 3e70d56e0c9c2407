package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestFromQuery_Defaults(t *testing.T) {
	c := testContext("http://example.com/api/recipes/")

	p := FromQuery(c, 6)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 6, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestFromQuery_MalformedFallsBack(t *testing.T) {
	c := testContext("http://example.com/api/recipes/?page=zero&limit=-3")

	p := FromQuery(c, 6)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 6, p.Limit)
}

func TestFromQuery_Explicit(t *testing.T) {
	c := testContext("http://example.com/api/recipes/?page=3&limit=2")

	p := FromQuery(c, 6)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 2, p.Limit)
	assert.Equal(t, 4, p.Offset())
}

func TestWrap_PageLinks(t *testing.T) {
	c := testContext("http://example.com/api/recipes/?page=2&limit=2&tags=lunch")

	env := Wrap(c, Params{Page: 2, Limit: 2}, 5, []int{3, 4})

	assert.Equal(t, int64(5), env.Count)
	require.NotNil(t, env.Next)
	assert.Contains(t, *env.Next, "page=3")
	assert.Contains(t, *env.Next, "tags=lunch")
	assert.Contains(t, *env.Next, "http://example.com/api/recipes/")
	require.NotNil(t, env.Previous)
	assert.Contains(t, *env.Previous, "page=1")
}

func TestWrap_EdgesHaveNoLinks(t *testing.T) {
	c := testContext("http://example.com/api/recipes/")

	env := Wrap(c, Params{Page: 1, Limit: 6}, 4, nil)
	assert.Nil(t, env.Next)
	assert.Nil(t, env.Previous)
}
