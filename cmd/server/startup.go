package main

import (
	"github.com/ayitek/borlette-pos/internal/appstate"
	"github.com/ayitek/borlette-pos/internal/gateway"
	"github.com/ayitek/borlette-pos/internal/localdb"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"go.uber.org/zap"
)

// restoreSession rehydrates a persisted session so the agent is not
// forced to log in after every restart. The token is validated by the
// first authenticated read: a dead token simply yields failed reads
// and the UI routes back to login.
func restoreSession(state *appstate.State, client *gateway.Client) {
	sess, err := localdb.GetSession()
	if err != nil {
		logger.Warn("Failed to read persisted session", zap.Error(err))
		return
	}
	if sess == nil {
		logger.Info("No persisted session, waiting for login")
		return
	}

	state.SetSession(*sess)
	logger.Info("Restored persisted session", zap.String("agent_id", sess.AgentID))

	// Warm the caches in the background; the web server does not wait.
	go func() {
		client.FetchLotteryConfig()
		client.FetchDraws()
		client.FetchBlockedNumbers()
		client.FetchTickets()
	}()
}
