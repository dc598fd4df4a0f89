package services

import (
	"log"
	"os"
	"strings"
	"sync"
)

// RosterEntry pairs a client-identifier substring with the moderator
// name it resolves to.
type RosterEntry struct {
	Pattern string
	Name    string
}

// RosterProvider supplies the current moderator roster. Implementations
// must return the latest state on every call; classification never
// caches it, so roster edits take effect without a restart.
type RosterProvider interface {
	Entries() ([]RosterEntry, error)
}

// FileRoster reads a flat file of "pattern,name" lines. Blank and
// malformed lines are skipped. Line order is significant: the first
// matching entry wins.
type FileRoster struct {
	Path string
}

func (f *FileRoster) Entries() ([]RosterEntry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}

	var entries []RosterEntry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pattern, name, ok := strings.Cut(line, ",")
		if !ok || pattern == "" {
			continue
		}
		entries = append(entries, RosterEntry{Pattern: pattern, Name: strings.TrimSpace(name)})
	}
	return entries, nil
}

type ModeratorService struct {
	roster RosterProvider
}

var (
	moderatorService *ModeratorService
	moderatorOnce    sync.Once
)

// GetModeratorService returns the singleton backed by the MODERATORS_FILE
// roster (default moderators.txt).
func GetModeratorService() *ModeratorService {
	moderatorOnce.Do(func() {
		path := os.Getenv("MODERATORS_FILE")
		if path == "" {
			path = "moderators.txt"
		}
		moderatorService = NewModeratorService(&FileRoster{Path: path})
	})
	return moderatorService
}

func NewModeratorService(roster RosterProvider) *ModeratorService {
	return &ModeratorService{roster: roster}
}

// Classify decides whether clientID belongs to a moderator. The roster is
// re-read on every call. A missing or unreadable roster is treated as an
// empty one: everyone is anonymous, and the failure is logged rather than
// surfaced to the caller.
func (s *ModeratorService) Classify(clientID string) (string, bool) {
	entries, err := s.roster.Entries()
	if err != nil {
		log.Printf("Moderator roster unavailable, treating all callers as anonymous: %v", err)
		return "", false
	}

	for _, e := range entries {
		if strings.Contains(clientID, e.Pattern) {
			return e.Name, true
		}
	}
	return "", false
}
