package mockdice

import (
	"sync"

	"github.com/petrichor-games/duelist/internal/dice"
	"github.com/petrichor-games/duelist/internal/errors"
)

// ManualMockRoller implements dice.Roller for testing with predetermined faces
type ManualMockRoller struct {
	mu    sync.Mutex
	faces []int
	index int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetFaces queues the faces returned by subsequent rolls, in order
func (m *ManualMockRoller) SetFaces(faces []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces = faces
	m.index = 0
}

// Reset clears all queued faces
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces = nil
	m.index = 0
}

// Roll implements dice.Roller using the queued faces
func (m *ManualMockRoller) Roll(count int) (*dice.RollResult, error) {
	if count < 1 {
		return nil, errors.InvalidArgumentf("invalid dice count: %d", count)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index+count > len(m.faces) {
		return nil, errors.Internalf("mock roller exhausted: need %d faces, have %d", count, len(m.faces)-m.index)
	}

	faces := make([]int, count)
	copy(faces, m.faces[m.index:m.index+count])
	m.index += count

	return &dice.RollResult{
		Faces: faces,
		Total: dice.Sum(faces),
	}, nil
}

// Preview implements dice.Roller; the mock repeats the next committed
// faces for every frame so tests stay deterministic.
func (m *ManualMockRoller) Preview(count, frames int) ([][]int, error) {
	if frames < 1 {
		return nil, errors.InvalidArgumentf("invalid preview frame count: %d", frames)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if count < 1 {
		return nil, errors.InvalidArgumentf("invalid dice count: %d", count)
	}
	if m.index+count > len(m.faces) {
		return nil, errors.Internalf("mock roller exhausted: need %d faces, have %d", count, len(m.faces)-m.index)
	}

	frame := make([]int, count)
	copy(frame, m.faces[m.index:m.index+count])

	previews := make([][]int, 0, frames)
	for i := 0; i < frames; i++ {
		previews = append(previews, frame)
	}
	return previews, nil
}
