package gateway

import (
	"encoding/json"
	"net/url"

	"github.com/ayitek/borlette-pos/internal/config"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/types"
	"go.uber.org/zap"
)

// Read operations: on any failure they log, leave or install a typed
// default, and report ReadFailed. Callers never branch on network
// errors.

// readFailure logs a failed read with its distinguishing reason.
func readFailure(op string, err error) ReadStatus {
	logger.Warn("Read operation failed, returning default",
		zap.String("operation", op), zap.Error(err))
	return ReadFailed
}

// rawDraw exists to default the administrative flag: a draw without an
// explicit active field is active.
type rawDraw struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Time   string `json:"time"`
	Color  string `json:"color"`
	Active *bool  `json:"active"`
}

func (r rawDraw) toDraw() types.Draw {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return types.Draw{ID: r.ID, Name: r.Name, Time: r.Time, Color: r.Color, Active: active}
}

// FetchLotteryConfig pulls the operating configuration. On failure the
// state keeps whatever configuration it had (or none) and the default
// payout table applies.
func (c *Client) FetchLotteryConfig() (types.LotteryConfig, ReadStatus) {
	body, err := c.getJSON(config.PathLotteryConfig)
	if err != nil {
		return types.LotteryConfig{Payouts: config.DefaultPayouts}, readFailure("lottery_config", err)
	}

	var cfg types.LotteryConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return types.LotteryConfig{Payouts: config.DefaultPayouts}, readFailure("lottery_config", err)
	}
	if len(cfg.Payouts) == 0 {
		cfg.Payouts = config.DefaultPayouts
	}
	c.state.SetConfig(cfg)
	return cfg, ReadOK
}

// FetchDraws replaces the cached draw table wholesale. A failed fetch
// falls back to the hardcoded default schedule so the terminal can
// still sell.
func (c *Client) FetchDraws() ([]types.Draw, ReadStatus) {
	body, err := c.getJSON(config.PathDraws)
	if err != nil {
		fallback := config.DefaultDraws()
		c.state.SetDraws(fallback)
		return fallback, readFailure("draws", err)
	}

	var payload struct {
		Draws []rawDraw `json:"draws"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		fallback := config.DefaultDraws()
		c.state.SetDraws(fallback)
		return fallback, readFailure("draws", err)
	}

	draws := make([]types.Draw, 0, len(payload.Draws))
	for _, r := range payload.Draws {
		draws = append(draws, r.toDraw())
	}
	c.state.SetDraws(draws)
	if len(draws) == 0 {
		logger.Info("Backend returned an empty draw list")
		return draws, ReadEmpty
	}
	return draws, ReadOK
}

// FetchBlockedNumbers refreshes both blocked-number sets wholesale.
func (c *Client) FetchBlockedNumbers() (types.BlockedNumbers, ReadStatus) {
	blocked := types.BlockedNumbers{ByDraw: map[string][]string{}}
	status := ReadOK

	body, err := c.getJSON(config.PathBlockedNumbers)
	if err != nil {
		status = readFailure("blocked_numbers", err)
	} else {
		var payload struct {
			Numbers []string `json:"numbers"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			status = readFailure("blocked_numbers", err)
		} else {
			blocked.Global = payload.Numbers
		}
	}

	body, err = c.getJSON(config.PathDrawBlocked)
	if err != nil {
		status = readFailure("draw_blocked_numbers", err)
	} else {
		var payload struct {
			ByDraw map[string][]string `json:"by_draw"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			status = readFailure("draw_blocked_numbers", err)
		} else if payload.ByDraw != nil {
			blocked.ByDraw = payload.ByDraw
		}
	}

	c.state.SetBlockedNumbers(blocked)
	if status == ReadOK && len(blocked.Global) == 0 && len(blocked.ByDraw) == 0 {
		return blocked, ReadEmpty
	}
	return blocked, status
}

// FetchTickets pulls the agent's ticket history. The sequence token
// taken before the request keeps a slow response from overwriting a
// fresher one.
func (c *Client) FetchTickets() ([]types.Ticket, ReadStatus) {
	seq := c.state.BeginTicketsFetch()

	body, err := c.getJSON(config.PathListTickets)
	if err != nil {
		return nil, readFailure("tickets", err)
	}

	var payload struct {
		Tickets []rawTicket `json:"tickets"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, readFailure("tickets", err)
	}

	tickets := make([]types.Ticket, 0, len(payload.Tickets))
	for _, r := range payload.Tickets {
		tickets = append(tickets, normalizeTicket(r))
	}

	if !c.state.ApplyTickets(seq, tickets) {
		logger.Debug("Discarded stale ticket list response", zap.Uint64("seq", seq))
	}
	if len(tickets) == 0 {
		return tickets, ReadEmpty
	}
	return tickets, ReadOK
}

// FetchReport pulls the backend's pre-aggregated report. A zero-valued
// report is the uniform no-data default.
func (c *Client) FetchReport() (types.Report, ReadStatus) {
	return c.fetchReport(config.PathReport, "report")
}

// FetchDrawReport pulls the per-draw report.
func (c *Client) FetchDrawReport(drawID string) (types.Report, ReadStatus) {
	path := config.PathDrawReport + "?draw_id=" + url.QueryEscape(drawID)
	return c.fetchReport(path, "draw_report")
}

func (c *Client) fetchReport(path, op string) (types.Report, ReadStatus) {
	body, err := c.getJSON(path)
	if err != nil {
		return types.Report{}, readFailure(op, err)
	}

	var report types.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return types.Report{}, readFailure(op, err)
	}
	if report.TicketCount == 0 {
		return report, ReadEmpty
	}
	return report, ReadOK
}

// FetchWinners pulls the winning-ticket list for this agent.
func (c *Client) FetchWinners() ([]types.Winner, ReadStatus) {
	body, err := c.getJSON(config.PathWinners)
	if err != nil {
		return nil, readFailure("winners", err)
	}

	var payload struct {
		Winners []types.Winner `json:"winners"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, readFailure("winners", err)
	}

	c.state.SetWinners(payload.Winners)
	if len(payload.Winners) == 0 {
		return payload.Winners, ReadEmpty
	}
	return payload.Winners, ReadOK
}

// FetchWinnerResults pulls published winning numbers for a draw.
func (c *Client) FetchWinnerResults(drawID string) ([]types.DrawResult, ReadStatus) {
	path := config.PathWinnerResults + "?draw_id=" + url.QueryEscape(drawID)
	body, err := c.getJSON(path)
	if err != nil {
		return nil, readFailure("winner_results", err)
	}

	var payload struct {
		Results []types.DrawResult `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, readFailure("winner_results", err)
	}
	if len(payload.Results) == 0 {
		return payload.Results, ReadEmpty
	}
	return payload.Results, ReadOK
}
