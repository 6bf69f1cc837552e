package adaptors

import (
	"context"
	"sync"
	"time"

	domain "screen_navigator/internal/domain/adaptors"
	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

type sessionArtifacts struct {
	order     []string
	artifacts map[string]*models.Artifact
}

// MemoryArtifactStore keeps the artifacts attached to each session in
// memory. Names are listed in attachment order; attaching an existing name
// again replaces it and moves it to the end.
type MemoryArtifactStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionArtifacts
	maxBytes int64
	now      func() time.Time
	log      *log.Logger
}

func NewMemoryArtifactStore(maxBytes int64, log *log.Logger) *MemoryArtifactStore {
	return &MemoryArtifactStore{
		sessions: make(map[string]*sessionArtifacts),
		maxBytes: maxBytes,
		now:      time.Now,
		log:      log,
	}
}

func (s *MemoryArtifactStore) Put(ctx context.Context, session string, artifact *models.Artifact) error {
	if artifact.Name == "" {
		return errors.New(`artifact name is empty`)
	}
	if s.maxBytes > 0 && int64(len(artifact.Data)) > s.maxBytes {
		return errors.Errorf(`%s is %s, limit is %s: %w`, artifact.Name,
			humanize.IBytes(uint64(len(artifact.Data))), humanize.IBytes(uint64(s.maxBytes)), errors.ErrArtifactTooLarge)
	}

	stored := *artifact
	stored.Data = append([]byte(nil), artifact.Data...)
	if stored.AttachedAt.IsZero() {
		stored.AttachedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sa, ok := s.sessions[session]
	if !ok {
		sa = &sessionArtifacts{artifacts: make(map[string]*models.Artifact)}
		s.sessions[session] = sa
	}
	if _, exists := sa.artifacts[stored.Name]; exists {
		for i, name := range sa.order {
			if name == stored.Name {
				sa.order = append(sa.order[:i], sa.order[i+1:]...)
				break
			}
		}
	}
	sa.order = append(sa.order, stored.Name)
	sa.artifacts[stored.Name] = &stored

	s.log.WithContext(ctx).WithFields(log.Fields{
		`session`:  session,
		`artifact`: stored.Name,
		`size`:     humanize.IBytes(uint64(len(stored.Data))),
	}).Debug(`artifact attached`)
	return nil
}

// Session returns the artifact view of one session. The session does not
// have to exist yet.
func (s *MemoryArtifactStore) Session(session string) domain.ArtifactStore {
	return &SessionArtifactStore{store: s, session: session}
}

// Clear drops every artifact of a session.
func (s *MemoryArtifactStore) Clear(session string) {
	s.mu.Lock()
	delete(s.sessions, session)
	s.mu.Unlock()
}

func (s *MemoryArtifactStore) load(session, name string) *models.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sa, ok := s.sessions[session]
	if !ok {
		return nil
	}
	a, ok := sa.artifacts[name]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

func (s *MemoryArtifactStore) list(session string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sa, ok := s.sessions[session]
	if !ok {
		return []string{}
	}
	return append([]string{}, sa.order...)
}

// SessionArtifactStore implements the domain ArtifactStore for one session.
type SessionArtifactStore struct {
	store   *MemoryArtifactStore
	session string
}

func (s *SessionArtifactStore) Load(ctx context.Context, name string) (*models.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.load(s.session, name), nil
}

func (s *SessionArtifactStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.list(s.session), nil
}
