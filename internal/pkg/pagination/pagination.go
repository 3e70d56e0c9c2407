package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Params struct {
	Page  int
	Limit int
}

// FromQuery reads page/limit query params, falling back to page 1 and
// defaultLimit for missing or malformed values.
func FromQuery(c *gin.Context, defaultLimit int) Params {
	p := Params{Page: 1, Limit: defaultLimit}

	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Page = n
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Limit = n
		}
	}
	return p
}

func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

type Envelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Wrap builds the list envelope with absolute next/previous page links
// derived from the current request URL.
func Wrap(c *gin.Context, p Params, total int64, results any) Envelope {
	env := Envelope{Count: total, Results: results}

	if int64(p.Offset()+p.Limit) < total {
		next := pageURL(c, p.Page+1)
		env.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(c, p.Page-1)
		env.Previous = &prev
	}
	return env
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	q, _ := url.ParseQuery(u.RawQuery)
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, u.RequestURI())
}
