package manager

import (
	log "github.com/sirupsen/logrus"
)

// HighScoreKey is the store key holding the persisted high score
const HighScoreKey = "highScore"

// Store is the persistent key-value store the high score lives in
type Store interface {
	Load(key string) (int, error)
	Save(key string, value int) error
}

// StateManager owns the high score across sessions. Persistence is best effort.
type StateManager struct {
	store     Store
	logger    log.FieldLogger
	highScore int
}

func NewStateManager(store Store, logger log.FieldLogger) *StateManager {
	sm := &StateManager{
		store:  store,
		logger: logger,
	}
	sm.load()
	return sm
}

func (sm *StateManager) load() {
	if sm.store == nil {
		return
	}
	v, err := sm.store.Load(HighScoreKey)
	if err != nil {
		sm.logger.WithError(err).Debug("no stored high score, starting from 0")
		return
	}
	if v < 0 {
		sm.logger.WithField("value", v).Warn("ignoring negative stored high score")
		return
	}
	sm.highScore = v
}

// Finalize records a finished session score. It reports whether the score was a new high.
func (sm *StateManager) Finalize(score int) bool {
	if score <= sm.highScore {
		return false
	}
	sm.highScore = score
	if sm.store != nil {
		if err := sm.store.Save(HighScoreKey, score); err != nil {
			sm.logger.WithError(err).WithField("score", score).Warn("could not persist high score")
		}
	}
	return true
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}
