package view

import (
	"bytes"
	"log/slog"
	"sync"
	"time"

	g "maragu.dev/gomponents"

	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

// Publisher receives the rendered panel whenever the document settles.
type Publisher interface {
	PublishPanel(html []byte)
}

// Document is the server-side HTML view of the panel. It implements
// panel.View and is safe for concurrent readers.
//
// Changes are pushed to the publisher when the busy state flips, which is
// once at the start and once at the end of a fetch cycle, so subscribers
// never see the half-updated states in between.
type Document struct {
	title      string
	reloadPath string
	stagger    time.Duration
	publisher  Publisher

	mu           sync.RWMutex
	busy         bool
	cards        []Card
	errMsg       string
	errVisible   bool
	count        int
	statsVisible bool
}

type DocumentOptions struct {
	Title      string
	ReloadPath string
	Stagger    time.Duration
	Publisher  Publisher
}

func NewDocument(opts DocumentOptions) *Document {
	return &Document{
		title:      opts.Title,
		reloadPath: opts.ReloadPath,
		stagger:    opts.Stagger,
		publisher:  opts.Publisher,
	}
}

func (d *Document) Title() string {
	return d.title
}

// SetBusy publishes the panel. Entering the busy state also drops the
// previous cycle's cards, count and error so the loading panel is empty.
func (d *Document) SetBusy(busy bool) {
	d.mu.Lock()
	d.busy = busy
	if busy {
		d.cards = nil
		d.statsVisible = false
		d.errVisible = false
	}
	d.mu.Unlock()

	d.publish()
}

func (d *Document) ClearRecords() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = nil
	d.statsVisible = false
}

func (d *Document) ShowRecords(records []users.UserRecord) {
	cards := RenderCards(records, d.stagger)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = cards
}

func (d *Document) ShowCount(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.count = n
	d.statsVisible = true
}

func (d *Document) ShowError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errMsg = msg
	d.errVisible = true
	d.statsVisible = false
}

func (d *Document) HideError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errVisible = false
}

// Snapshot returns the current panel contents.
func (d *Document) Snapshot() PanelData {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return PanelData{
		Title:        d.title,
		ReloadPath:   d.reloadPath,
		Busy:         d.busy,
		Cards:        append([]Card(nil), d.cards...),
		Error:        d.errMsg,
		ErrorVisible: d.errVisible,
		Count:        d.count,
		StatsVisible: d.statsVisible,
	}
}

func (d *Document) Node() g.Node {
	return PanelNode(d.Snapshot())
}

func (d *Document) publish() {
	if d.publisher == nil {
		return
	}

	var buf bytes.Buffer
	if err := d.Node().Render(&buf); err != nil {
		slog.Error("Failed to render panel", "error", err)
		return
	}
	d.publisher.PublishPanel(buf.Bytes())
}
