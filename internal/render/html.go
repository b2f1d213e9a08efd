package render

import (
	"html/template"
	"io"
	"time"

	"github.com/puigmarti/directesport/internal/catalog"
)

// The page is self-contained: no external assets, local-time rendering done
// client side from the data-start epoch attribute.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Live Sport</title>
<style>
body { font-family: system-ui, sans-serif; background: #10141c; color: #e8e8e8; margin: 0; padding: 1rem; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; border-bottom: 1px solid #2a3244; padding-bottom: .3rem; margin-top: 1.5rem; }
.event { background: #1a2130; border-radius: 8px; padding: .7rem 1rem; margin: .6rem 0; }
.event .teams { font-weight: 600; }
.event .when { color: #9ab0d0; font-size: .85rem; margin-left: .5rem; }
.event.live .when::before { content: "● LIVE "; color: #e2574c; }
.streams { margin: .4rem 0 0; padding: 0; list-style: none; }
.streams li { display: inline-block; margin: .15rem .4rem .15rem 0; }
.streams a { color: #7fb2ff; text-decoration: none; font-size: .9rem; }
.empty { color: #9ab0d0; margin-top: 3rem; text-align: center; }
footer { color: #5a6780; font-size: .8rem; margin-top: 2rem; }
</style>
</head>
<body>
<h1>Live Sport</h1>
{{if .Catalog.Empty}}
<p class="empty">No live events right now. Check back later.</p>
{{else}}
{{range .Catalog.Groups}}
<section>
<h2>{{.Category}}</h2>
{{range .Events}}
<div class="event{{if .IsLive}} live{{end}}">
  <span class="teams">{{.HomeName}} vs {{.AwayName}}</span>
  <span class="when" data-start="{{.StartUTC.Unix}}">{{.StartUTC.Format "15:04"}} UTC</span>
  <ul class="streams">
  {{range .Streams}}
    <li><a href="{{.URI}}" target="_blank" rel="noopener">{{flag .RegionCode}} {{.Label}}</a></li>
  {{end}}
  </ul>
</div>
{{end}}
</section>
{{end}}
{{end}}
<footer>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}} UTC</footer>
<script>
document.querySelectorAll('[data-start]').forEach(function (el) {
  var d = new Date(parseInt(el.dataset.start, 10) * 1000);
  el.textContent = d.toLocaleTimeString([], { hour: '2-digit', minute: '2-digit' });
});
</script>
</body>
</html>
`

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"flag": FlagLabel,
}).Parse(pageTemplate))

type pageData struct {
	Catalog     catalog.Catalog
	GeneratedAt time.Time
}

// WriteHTML renders the browsable page. An empty catalog renders an explicit
// "no live events" state, never a blank document.
func WriteHTML(w io.Writer, c catalog.Catalog, generatedAt time.Time) error {
	return page.Execute(w, pageData{Catalog: c, GeneratedAt: generatedAt.UTC()})
}
