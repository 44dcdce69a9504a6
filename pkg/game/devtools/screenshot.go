package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/generator"
	"dungeonlayout/pkg/game/renderer"
	"dungeonlayout/pkg/game/text"
)

var styleClasses = map[renderer.TextStyle]string{
	renderer.StyleNormal:   "void",
	renderer.StyleRoom:     "room",
	renderer.StyleCorridor: "corridor",
	renderer.StyleDoorStep: "door",
	renderer.StylePadding:  "padding",
	renderer.StyleStart:    "start",
	renderer.StyleBoss:     "boss",
}

// RenderHTML returns a standalone HTML page showing the occupied part of l,
// north up, with the generator's warnings underneath.
func RenderHTML(l *generator.LevelLayout) string {
	win := renderer.Frame(l, l.Size(), l.Size())
	owners := specialRooms(l)

	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Dungeon Layout</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .room { color: #888; }
        .corridor { color: #aaaa00; }
        .door { color: #00ffff; font-weight: bold; }
        .padding { color: #444; }
        .start { color: #00ff00; font-weight: bold; }
        .boss { color: #ff4444; font-weight: bold; }
        .void { color: #1a1a2e; }
        .legend { color: #666; }
        .messages {
            margin-top: 20px;
            border-top: 1px solid #333;
            padding-top: 10px;
        }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)

	b.WriteString(fmt.Sprintf(`    <div class="header">%s</div>`+"\n",
		html.EscapeString(fmt.Sprintf(text.Get("PREVIEW_HEADER"), l.Seed(), l.Size(), l.Size(), len(l.Rooms())))))

	b.WriteString(`    <div class="map-container">` + "\n")
	for y := win.MinY + win.Rows - 1; y >= win.MinY; y-- {
		b.WriteString(`        <div class="map-row">`)
		for x := win.MinX; x < win.MinX+win.Cols; x++ {
			p := world.Pt(x, y)
			kind, inRoom := owners[p]
			icon, style := renderer.TileStyle(l.At(p), kind, inRoom)
			b.WriteString(fmt.Sprintf(`<span class="%s">%s</span>`, styleClasses[style], icon))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString(`    </div>` + "\n")
	b.WriteString(fmt.Sprintf(`    <div class="legend">%s</div>`+"\n", html.EscapeString(text.Get("PREVIEW_LEGEND"))))

	var messages []string
	for _, s := range l.Shortfalls() {
		messages = append(messages, fmt.Sprintf(text.Get("WARN_SHORTFALL"), s.Biome, s.Placed, s.Requested))
	}
	for _, k := range l.Dropped() {
		messages = append(messages, fmt.Sprintf(text.Get("WARN_CORRIDOR_DROPPED"), k.FromRoom, k.ToRoom, generator.ErrNoPath))
	}
	if u := l.Unreachable(); len(u) > 0 {
		messages = append(messages, fmt.Sprintf(text.Get("PREVIEW_UNREACHABLE"), u))
	}
	if len(messages) > 0 {
		b.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range messages {
			b.WriteString(fmt.Sprintf(`        <div class="message">%s</div>`+"\n", html.EscapeString(msg)))
		}
		b.WriteString(`    </div>` + "\n")
	}

	b.WriteString(`</body>
</html>
`)
	return b.String()
}

// SaveScreenshotHTML writes RenderHTML(l) to dir as
// layout-<seed>-<timestamp>.html and returns the file's path.
func SaveScreenshotHTML(l *generator.LevelLayout, dir string, now time.Time) (string, error) {
	filename := fmt.Sprintf("layout-%d-%s.html", l.Seed(), now.Format("20060102-150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(RenderHTML(l)), 0644); err != nil {
		return "", err
	}
	return path, nil
}
