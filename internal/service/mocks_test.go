package service

import (
	"context"

	"screen_navigator/internal/domain/models"

	"github.com/stretchr/testify/mock"
)

// MockArtifactStore is a mock implementation of the ArtifactStore interface
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Load(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	a, _ := args.Get(0).(*models.Artifact)
	return a, args.Error(1)
}

func (m *MockArtifactStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// MockVisionModel is a mock implementation of the VisionModel interface
type MockVisionModel struct {
	mock.Mock
}

func (m *MockVisionModel) GenerateContent(ctx context.Context, model string, image *models.Artifact, prompt string) (string, error) {
	args := m.Called(ctx, model, image, prompt)
	return args.String(0), args.Error(1)
}

// MockSearcher is a mock implementation of the Searcher interface
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*models.SearchResponse)
	return resp, args.Error(1)
}

// fakeStore is an ordered in-memory artifact store for property-style tests.
type fakeStore struct {
	order   []string
	files   map[string][]byte
	listErr error
	loads   []string
}

func newFakeStore(names ...string) *fakeStore {
	s := &fakeStore{files: map[string][]byte{}}
	for _, n := range names {
		s.order = append(s.order, n)
		s.files[n] = []byte("bytes of " + n)
	}
	return s
}

func (s *fakeStore) Load(_ context.Context, name string) (*models.Artifact, error) {
	s.loads = append(s.loads, name)
	data, ok := s.files[name]
	if !ok {
		return nil, nil
	}
	return &models.Artifact{Name: name, Data: data}, nil
}

func (s *fakeStore) List(context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]string{}, s.order...), nil
}
