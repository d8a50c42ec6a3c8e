package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
	"github.com/1siamBot/outpost/engine/match"
)

// Clock renders a duration as mm:ss, dropping partial seconds
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Countdown is the extraction timer line
func Countdown(remaining time.Duration) string {
	return "Time until extraction " + Clock(remaining)
}

// HealthLine is the inspection panel's hit point line
func HealthLine(h *core.Health) string {
	if h == nil {
		return ""
	}
	hp := h.HP
	if hp < 0 {
		hp = 0
	}
	return fmt.Sprintf("Health: %d / %d", hp, h.Max)
}

// ResourceLine lists every kind, zeros included, so the bar doesn't jump
func ResourceLine(s economy.ResourceSet) string {
	entries := s.Entries(false)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %d", e.Kind, e.Amount)
	}
	return strings.Join(parts, "   ")
}

// SummaryLines is the scoreboard shown on the end screens
func SummaryLines(s *match.Summary) []string {
	if s == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Survived:        %s", Clock(s.Elapsed)),
		fmt.Sprintf("Aliens killed:   %d", s.AliensKilled),
		fmt.Sprintf("Aliens spawned:  %d", s.AliensSpawned),
		fmt.Sprintf("Buildings built: %d", s.Built),
		fmt.Sprintf("Buildings lost:  %d", s.BuildingsLost),
		fmt.Sprintf("Holdings:        %s", s.Holdings),
	}
}

// OutcomeTitle is the heading of an end screen
func OutcomeTitle(state core.GameState) string {
	switch state {
	case core.StateVictory:
		return "EXTRACTION SUCCESSFUL"
	case core.StateGameOver:
		return "YOUR BASE HAS FALLEN"
	}
	return ""
}
