package server

import (
	"text/template"
)

// The listing is escaped by hand with numeric references and &nbsp;, so it
// is rendered with text/template rather than html/template.
const listingTemplate = `<!doctype html>
<html>
<head>
  <title>Index of {{escapeHTML .Path}}</title>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width">
  <style>
    td {
      font-family: monospace;
    }
    td.size {
      text-align: right;
      width: 4em;
    }
    td.name {
      padding-left: 1em;
    }
  </style>
</head>
<body>
  <h1>Index of {{escapeHTML .Path}}</h1>
  <table>
{{- range .Entries}}
    <tr>
      <td class="icon">{{.Icon}}</td>
      <td class="size">{{.Size}}</td>
      <td class="name"><a href="{{escapeAttr .Href}}">{{escapeHTML .Href}}</a></td>
    </tr>
{{- end}}
  </table>
  <br>
  <address>Powered by dirserve ({{.Generated}})</address>
</body>
</html>
`

const (
	dirIcon  = "📂"
	fileIcon = "📄"
)

type listingPageData struct {
	Path      string
	Entries   []entryView
	Generated string
}

type entryView struct {
	Icon string
	Size string
	Href string
}

func newListingTemplate() (*template.Template, error) {
	return template.New("listing").Funcs(template.FuncMap{
		"escapeHTML": escapeHTML,
		"escapeAttr": escapeAttr,
	}).Parse(listingTemplate)
}
