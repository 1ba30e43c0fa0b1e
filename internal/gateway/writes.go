package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ayitek/borlette-pos/internal/config"
	"github.com/ayitek/borlette-pos/internal/localdb"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Write operations: failures are propagated to the caller with the
// server's status and message. The caller owns user notification.

// Login authenticates the agent and persists the three durable session
// fields. It is the only call made without a bearer credential.
func (c *Client) Login(username, password string) (types.Session, error) {
	raw, err := c.postJSON(config.PathLogin, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return types.Session{}, fmt.Errorf("login failed: %w", err)
	}

	var payload struct {
		Token     string `json:"token"`
		AgentID   string `json:"agent_id"`
		AgentName string `json:"agent_name"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return types.Session{}, fmt.Errorf("unexpected login response: %w", err)
	}
	if payload.Token == "" {
		return types.Session{}, &APIError{Status: 200, Message: "login response carried no token"}
	}

	sess := types.Session{
		Token:     payload.Token,
		AgentID:   payload.AgentID,
		AgentName: payload.AgentName,
	}
	if err := localdb.SaveSession(sess); err != nil {
		return types.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}
	c.state.SetSession(sess)

	logger.Info("Agent logged in", zap.String("agent_id", sess.AgentID))
	return sess, nil
}

// SaveTicket submits the cart for the given draws: one ticket per
// draw. On success the cart is cleared and the created tickets are
// prepended to the cached history. A client-side reference id travels
// with the request so the backend can deduplicate retries.
func (c *Client) SaveTicket(bets []types.Bet, drawIDs []string) ([]types.Ticket, error) {
	if len(bets) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	if len(drawIDs) == 0 {
		return nil, fmt.Errorf("no draw selected")
	}

	ref, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client reference: %w", err)
	}

	raw, err := c.postJSON(config.PathSaveTicket, map[string]any{
		"client_ref": ref,
		"draw_ids":   drawIDs,
		"bets":       bets,
	})
	if err != nil {
		return nil, fmt.Errorf("save ticket failed: %w", err)
	}

	var payload struct {
		Tickets []rawTicket `json:"tickets"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unexpected save response: %w", err)
	}

	tickets := make([]types.Ticket, 0, len(payload.Tickets))
	for _, r := range payload.Tickets {
		tickets = append(tickets, normalizeTicket(r))
	}

	c.state.ClearCart()
	seq := c.state.BeginTicketsFetch()
	c.state.ApplyTickets(seq, append(tickets, c.state.Tickets()...))

	logger.Info("Tickets saved",
		zap.String("client_ref", ref),
		zap.Int("count", len(tickets)))
	return tickets, nil
}

// DeleteTicket deletes a ticket server-side. The local cache entry is
// removed only after the backend confirms; on failure the cache is
// unchanged and the error surfaces to the caller.
func (c *Client) DeleteTicket(id int64) error {
	_, err := c.send(http.MethodDelete, config.PathDeleteTicket+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return fmt.Errorf("delete ticket %d failed: %w", id, err)
	}

	c.state.RemoveTicket(id)
	logger.Info("Ticket deleted", zap.Int64("ticket_id", id))
	return nil
}

// CheckWinningTickets asks the backend to settle this agent's tickets
// against published results. The refreshed winner list is cached.
func (c *Client) CheckWinningTickets() ([]types.Winner, error) {
	raw, err := c.postJSON(config.PathCheckWinners, nil)
	if err != nil {
		return nil, fmt.Errorf("check winning tickets failed: %w", err)
	}

	var payload struct {
		Winners []types.Winner `json:"winners"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unexpected check response: %w", err)
	}

	c.state.SetWinners(payload.Winners)
	return payload.Winners, nil
}

// MarkWinnerPaid records a payout against a winning ticket.
func (c *Client) MarkWinnerPaid(ticketID int64) error {
	_, err := c.postJSON(config.PathMarkWinnerPaid, map[string]int64{"ticket_id": ticketID})
	if err != nil {
		return fmt.Errorf("mark winner paid failed: %w", err)
	}

	winners := c.state.Winners()
	for i := range winners {
		if winners[i].TicketID == ticketID {
			winners[i].Paid = true
		}
	}
	c.state.SetWinners(winners)

	logger.Info("Winner marked paid", zap.Int64("ticket_id", ticketID))
	return nil
}

// Logout erases the durable credentials and clears the state
// container. Local failure to erase is reported; there is no backend
// call.
func (c *Client) Logout() error {
	if err := localdb.ClearSession(); err != nil {
		return err
	}
	c.state.Clear()
	logger.Info("Agent logged out, session cleared")
	return nil
}
