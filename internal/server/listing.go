package server

import (
	"bytes"
	"context"
	"text/template"
	"time"

	"dirserve/internal/tree"
)

// listingTimeLayout renders the footer timestamp in local time.
const listingTimeLayout = "1/2/2006, 3:04:05 PM"

type lister struct {
	tmpl *template.Template
	now  func() time.Time
}

func newLister() (*lister, error) {
	tmpl, err := newListingTemplate()
	if err != nil {
		return nil, err
	}
	return &lister{tmpl: tmpl, now: time.Now}, nil
}

// render produces the index page for dir, whose logical path is dirPath.
func (l *lister) render(ctx context.Context, dir tree.Dir, dirPath string) ([]byte, error) {
	entries, err := listEntries(ctx, dir, dirPath)
	if err != nil {
		return nil, err
	}

	data := listingPageData{
		Path:      dirPath,
		Entries:   buildEntryViews(entries),
		Generated: l.now().Local().Format(listingTimeLayout),
	}

	var buf bytes.Buffer
	if err := l.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildEntryViews(entries []fileEntry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir {
			views = append(views, entryView{Icon: dirIcon, Href: entry.Name + "/"})
			continue
		}
		views = append(views, entryView{
			Icon: fileIcon,
			Size: formatSize(entry.Size),
			Href: entry.Name,
		})
	}
	return views
}
