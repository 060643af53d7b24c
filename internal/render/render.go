package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

//go:embed templates/page.html static/style.css static/app.js
var files embed.FS

// BannerMessage is shown above the directory after a failed load.
const BannerMessage = "Failed to load bookmarks, please try again later"

// Options configure a Renderer.
type Options struct {
	Title        string
	ScrollOffset int           // px, see domain.CategoryAt
	BannerTTL    time.Duration // how long the failure banner stays on screen
}

// Request carries the per-request inputs of a served page.
type Request struct {
	Query   string // raw search query
	Clicked string // category last selected in the navigation
	Failure error  // last load failure, nil once a later load succeeded
}

// Renderer turns a directory snapshot into the HTML page.
type Renderer struct {
	opts Options
	page *template.Template
	css  template.CSS
	js   template.JS
}

// New parses the embedded page template and assets.
func New(opts Options) (*Renderer, error) {
	if opts.Title == "" {
		opts.Title = "Bookmarks"
	}
	if opts.ScrollOffset == 0 {
		opts.ScrollOffset = domain.DefaultScrollOffset
	}
	if opts.BannerTTL <= 0 {
		opts.BannerTTL = 3 * time.Second
	}

	page, err := template.ParseFS(files, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	css, err := files.ReadFile("static/style.css")
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}
	js, err := files.ReadFile("static/app.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return &Renderer{
		opts: opts,
		page: page,
		css:  template.CSS(css), // #nosec G203 -- embedded at build time
		js:   template.JS(js),   // #nosec G203 -- embedded at build time
	}, nil
}

// Assets returns the files served under /static/.
func Assets() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page writes the served page: cards link through /go/{id}, the query and
// clicked category come from req. The failure banner is included whenever
// req carries a failure; the script removes it BannerTTL after display.
func (r *Renderer) Page(w io.Writer, dir *domain.Directory, req Request) error {
	data := r.build(dir, req.Query, req.Clicked, false)

	if req.Failure != nil {
		data.Banner = BannerMessage
		data.BannerTTL = r.opts.BannerTTL.Milliseconds()
	}

	return r.page.Execute(w, data)
}

// Static writes a self-contained page with inlined assets and direct links,
// suitable for opening from disk.
func (r *Renderer) Static(w io.Writer, dir *domain.Directory) error {
	return r.page.Execute(w, r.build(dir, "", "", true))
}

type cardData struct {
	Title       string
	Description string
	URL         string
	Href        string // empty when the entry has no url
	Icon        template.URL
	Hidden      bool
}

type sectionData struct {
	Name   string
	Anchor string
	Hidden bool
	Cards  []cardData
}

type navData struct {
	Category string
	Href     string
	Active   bool
}

type pageData struct {
	Title        string
	Query        string
	Sections     []sectionData
	Nav          []navData
	Banner       string
	BannerTTL    int64 // ms the banner stays on screen
	ScrollOffset int
	FallbackIcon string
	Static       bool
	CSS          template.CSS
	JS           template.JS
}

func (r *Renderer) build(dir *domain.Directory, query, clicked string, static bool) pageData {
	res := domain.Filter(dir, query)
	active := domain.ResolveActive(domain.NavSignals{Search: res, Clicked: clicked})

	data := pageData{
		Title:        r.opts.Title,
		Query:        query,
		ScrollOffset: r.opts.ScrollOffset,
		FallbackIcon: domain.FallbackIcon,
		Static:       static,
	}
	if static {
		data.CSS = r.css
		data.JS = r.js
	}

	anchors := make(map[string]string, len(res.Sections))
	for i, sec := range res.Sections {
		anchor := "category-" + strconv.Itoa(i)
		anchors[sec.Name] = anchor

		sd := sectionData{
			Name:   sec.Name,
			Anchor: anchor,
			Hidden: !sec.Visible,
			Cards:  make([]cardData, 0, len(sec.Cards)),
		}
		for _, c := range sec.Cards {
			sd.Cards = append(sd.Cards, cardFor(c, static))
		}
		data.Sections = append(data.Sections, sd)
	}

	for _, item := range domain.Navigation(dir, active) {
		href := "#" + anchors[item.Category]
		if !static {
			href = "?c=" + url.QueryEscape(item.Category) + href
		}
		data.Nav = append(data.Nav, navData{
			Category: item.Category,
			Href:     href,
			Active:   item.Active,
		})
	}

	return data
}

func cardFor(c domain.CardView, static bool) cardData {
	e := c.Entry
	cd := cardData{
		Title:       e.Title,
		Description: e.DisplayDescription(),
		URL:         e.URL,
		Icon:        iconURL(e),
		Hidden:      !c.Visible,
	}
	if e.Clickable() {
		if static {
			cd.Href = e.URL
		} else {
			cd.Href = "/go/" + e.ID
		}
	}
	return cd
}

// iconURL marks the icon source as safe for a src attribute.
// IconSource only yields data:image/ URIs or http(s) URLs.
func iconURL(e domain.Entry) template.URL {
	return template.URL(e.IconSource()) // #nosec G203
}
