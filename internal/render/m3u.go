package render

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/puigmarti/directesport/internal/catalog"
)

// WriteM3U renders the catalog as an extended M3U playlist, one entry per
// stream link. timeOffset shifts the displayed clock time for players that
// cannot adjust to local time themselves; the underlying start instant is
// untouched.
func WriteM3U(w io.Writer, c catalog.Catalog, timeOffset time.Duration) error {
	buf := &bytes.Buffer{}
	buf.WriteString("#EXTM3U\n")
	for _, g := range c.Groups {
		for _, ev := range g.Events {
			title := ev.HomeName + " vs " + ev.AwayName
			clock := ev.StartUTC.Add(timeOffset).Format("15:04")
			for _, s := range ev.Streams {
				buf.WriteString(fmt.Sprintf(
					`#EXTINF:-1 tvg-logo="%s" group-title="%s",[%s] %s | %s %s`+"\n",
					ev.LogoURL, g.Category, clock, title, FlagLabel(s.RegionCode), s.Label,
				))
				buf.WriteString(s.URI + "\n")
			}
		}
	}
	_, err := io.Copy(w, buf)
	return err
}
