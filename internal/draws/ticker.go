package draws

import (
	"encoding/json"
	"time"

	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/types"
)

// DrawView is the derived per-draw state pushed to the rendering layer.
type DrawView struct {
	types.Draw
	TimeBlocked bool   `json:"time_blocked"`
	Eligible    bool   `json:"eligible"`
	Badge       string `json:"badge,omitempty"`
	Selected    bool   `json:"selected"`
}

// Snapshot derives the current view of the whole draw table.
func (e *Engine) Snapshot(now time.Time) []DrawView {
	selected := make(map[string]bool)
	for _, id := range e.state.SelectedDraws() {
		selected[id] = true
	}

	drawTable := e.state.Draws()
	views := make([]DrawView, 0, len(drawTable))
	for _, d := range drawTable {
		st := StatusOf(d, now)
		views = append(views, DrawView{
			Draw:        d,
			TimeBlocked: st.TimeBlocked,
			Eligible:    st.Eligible(),
			Badge:       st.Badge(),
			Selected:    selected[d.ID],
		})
	}
	return views
}

// Ticker recomputes derived eligibility once per second and publishes
// it to the rendering layer. Recomputation is idempotent, so a
// publish only happens when the derived view actually changed.
type Ticker struct {
	engine  *Engine
	publish func(views []DrawView)
	stop    chan struct{}
	done    chan struct{}
}

func NewTicker(engine *Engine, publish func(views []DrawView)) *Ticker {
	return &Ticker{
		engine:  engine,
		publish: publish,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (t *Ticker) Start() {
	go t.run()
}

// Stop cancels the ticker. Called on session teardown.
func (t *Ticker) Stop() {
	close(t.stop)
	<-t.done
}

func (t *Ticker) run() {
	defer close(t.done)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var last []byte
	for {
		select {
		case <-t.stop:
			logger.Debug("Eligibility ticker stopped")
			return
		case <-ticker.C:
			views := t.engine.Snapshot(t.engine.Now())
			encoded, err := json.Marshal(views)
			if err != nil {
				continue
			}
			if string(encoded) == string(last) {
				continue
			}
			last = encoded
			t.publish(views)
		}
	}
}
