package pagination

import (
	"net/url"
	"strconv"
)

const DefaultPageSize = 5

type Links struct {
	First *string `json:"first"`
	Last  *string `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

type Meta struct {
	CurrentPage int        `json:"current_page"`
	From        *int       `json:"from"`
	LastPage    int        `json:"last_page"`
	Links       []PageLink `json:"links"`
	Path        string     `json:"path"`
	PerPage     int        `json:"per_page"`
	To          *int       `json:"to"`
	Total       int        `json:"total"`
}

type Page[T any] struct {
	Data  []T   `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// Request describes how the current page was asked for. URL is the
// absolute request URI whose "page" parameter gets rewritten when
// building links; Path is the same URI stripped of its query string.
type Request struct {
	URL     string
	Path    string
	Page    int
	PerPage int
}

// Paginate slices items into the page the request asks for and wraps it
// in the envelope. It never fails: out-of-range page numbers are clamped
// and an empty input produces a single empty page.
func Paginate[T any](items []T, req Request) Page[T] {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = DefaultPageSize
	}

	total := len(items)
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	data := items[start:end]

	var from, to *int
	if len(data) > 0 {
		f := start + 1
		t := start + len(data)
		from, to = &f, &t
	}

	var first, last, prev, next *string
	if page != 1 {
		first = pageURL(req.URL, 1)
		prev = pageURL(req.URL, page-1)
	}
	if page != lastPage {
		last = pageURL(req.URL, lastPage)
		next = pageURL(req.URL, page+1)
	}

	links := make([]PageLink, 0, lastPage+2)
	links = append(links, PageLink{URL: prev, Label: "« السابق"})
	for i := 1; i <= lastPage; i++ {
		links = append(links, PageLink{URL: pageURL(req.URL, i), Label: strconv.Itoa(i), Active: i == page})
	}
	links = append(links, PageLink{URL: next, Label: "التالي »"})

	return Page[T]{
		Data:  data,
		Links: Links{First: first, Last: last, Prev: prev, Next: next},
		Meta: Meta{
			CurrentPage: page,
			From:        from,
			LastPage:    lastPage,
			Links:       links,
			Path:        req.Path,
			PerPage:     perPage,
			To:          to,
			Total:       total,
		},
	}
}

// pageURL rewrites the "page" query parameter of an absolute URI.
func pageURL(rawURL string, page int) *string {
	u, err := url.Parse(rawURL)
	if err != nil {
		s := rawURL
		return &s
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
